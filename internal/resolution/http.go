package resolution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rocketscienceinc/ultimate-tictactoe/internal/entity"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// HTTPClient resolves moves against a remote board service.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (that *HTTPClient) CreateSubBoard(ctx context.Context, startingMark entity.Mark) (SubBoardHandle, error) {
	var board BoardDTO
	if err := that.do(ctx, http.MethodPost, "/tictactoe/new", CreateBoardRequest{StartingPlayer: startingMark}, &board); err != nil {
		return SubBoardHandle{}, fmt.Errorf("failed to create sub-board: %w", err)
	}

	return SubBoardHandle{ID: board.ID, Grid: board.Board}, nil
}

func (that *HTTPClient) ApplyMove(ctx context.Context, handle SubBoardHandle, cell int, mark entity.Mark) (MoveOutcome, error) {
	var board BoardDTO
	path := "/tictactoe/" + url.PathEscape(handle.ID) + "/move"
	if err := that.do(ctx, http.MethodPost, path, MoveRequest{Index: cell, Player: mark}, &board); err != nil {
		return MoveOutcome{}, fmt.Errorf("failed to apply move: %w", err)
	}

	return MoveOutcome{Grid: board.Board, Winner: board.Winner, IsDraw: board.IsDraw}, nil
}

func (that *HTTPClient) DeleteSubBoard(ctx context.Context, handle SubBoardHandle) error {
	var resp DeleteResponse
	if err := that.do(ctx, http.MethodDelete, "/tictactoe/"+url.PathEscape(handle.ID), nil, &resp); err != nil {
		return fmt.Errorf("failed to delete sub-board: %w", err)
	}

	if !resp.OK {
		return fmt.Errorf("failed to delete sub-board: %s", resp.Reason)
	}

	return nil
}

// do - sends one JSON request. A 400 answer is a move rejection, anything else non-2xx is a failure.
func (that *HTTPClient) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("could not marshal request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, that.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("could not build request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := that.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusBadRequest {
		var detail ErrorResponse
		if err = json.NewDecoder(resp.Body).Decode(&detail); err != nil || detail.Detail == "" {
			detail.Detail = http.StatusText(resp.StatusCode)
		}

		return &RejectedError{Reason: detail.Detail}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("could not decode response: %w", err)
	}

	return nil
}
