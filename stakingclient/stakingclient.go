// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stakingclient provides an HTTP client for the staking engine
// REST API.
package stakingclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/api/events"
	"github.com/GalaxySciTech/bbb-liquiditystaking/api/staking"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrNot200Status = errors.New("not 200 status code")
)

// Client talks to one staking engine API endpoint.
type Client struct {
	url string
	c   *http.Client
}

// New creates a Client with the provided base URL.
func New(url string) *Client {
	return NewWithHTTP(url, http.DefaultClient)
}

func NewWithHTTP(url string, c *http.Client) *Client {
	return &Client{
		url: url,
		c:   c,
	}
}

func (c *Client) httpRequest(method, url string, payload io.Reader) ([]byte, error) {
	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return nil, errors.Wrap(err, "unable to create request")
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	res, err := c.c.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "unable to perform request")
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "unable to read response body")
	}
	switch {
	case res.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case res.StatusCode != http.StatusOK:
		return nil, errors.Wrapf(ErrNot200Status, "%d: %s", res.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}

func (c *Client) httpGET(url string) ([]byte, error) {
	return c.httpRequest(http.MethodGet, url, nil)
}

func (c *Client) httpPOST(url string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "unable to marshal payload")
	}
	return c.httpRequest(http.MethodPost, url, bytes.NewReader(data))
}

func getJSON[T any](c *Client, path string) (*T, error) {
	body, err := c.httpGET(c.url + path)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal response")
	}
	return &out, nil
}

func postJSON[T any](c *Client, path string, payload any) (*T, error) {
	body, err := c.httpPOST(c.url+path, payload)
	if err != nil {
		return nil, err
	}
	var out T
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, errors.Wrap(err, "unable to unmarshal response")
	}
	return &out, nil
}

// Status retrieves the pool accounting snapshot.
func (c *Client) Status() (*pool.Status, error) {
	return getJSON[pool.Status](c, "/staking/status")
}

// Params retrieves the governable parameters.
func (c *Client) Params() (*pool.ParamsView, error) {
	return getJSON[pool.ParamsView](c, "/staking/params")
}

// BalanceOf retrieves the share balance of an address.
func (c *Client) BalanceOf(addr xdc.Address) (*big.Int, error) {
	out, err := getJSON[struct {
		Balance *staking.Amount `json:"balance"`
	}](c, "/staking/accounts/"+addr.String()+"/balance")
	if err != nil {
		return nil, err
	}
	return (*big.Int)(out.Balance), nil
}

// Stake deposits native value and returns the minted shares.
func (c *Client) Stake(caller xdc.Address, value *big.Int) (*big.Int, error) {
	out, err := postJSON[struct {
		Shares *staking.Amount `json:"shares"`
	}](c, "/staking/stake", map[string]any{
		"caller": caller.String(),
		"value":  (*staking.Amount)(value),
	})
	if err != nil {
		return nil, err
	}
	return (*big.Int)(out.Shares), nil
}

// Withdraw burns shares, paid instantly or via a claim ticket.
func (c *Client) Withdraw(caller xdc.Address, shares *big.Int) (*staking.WithdrawResult, error) {
	return postJSON[staking.WithdrawResult](c, "/staking/withdraw", map[string]any{
		"caller": caller.String(),
		"shares": (*staking.Amount)(shares),
	})
}

// RequestWithdrawal queues an operator-reviewed withdrawal and returns its id.
func (c *Client) RequestWithdrawal(caller xdc.Address, shares *big.Int) (uint64, error) {
	out, err := postJSON[struct {
		ID uint64 `json:"id"`
	}](c, "/staking/requests", map[string]any{
		"caller": caller.String(),
		"shares": (*staking.Amount)(shares),
	})
	if err != nil {
		return 0, err
	}
	return out.ID, nil
}

// GetRequest retrieves one withdrawal request.
func (c *Client) GetRequest(id uint64) (*staking.Request, error) {
	return getJSON[staking.Request](c, fmt.Sprintf("/staking/requests/%d", id))
}

// PendingRequests retrieves the ids of unprocessed withdrawal requests.
func (c *Client) PendingRequests() ([]uint64, error) {
	out, err := getJSON[[]uint64](c, "/staking/requests/pending")
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// ApproveWithdrawal approves one pending request.
func (c *Client) ApproveWithdrawal(caller xdc.Address, id uint64) error {
	_, err := c.httpPOST(c.url+fmt.Sprintf("/staking/requests/%d/approve", id), map[string]any{
		"caller": caller.String(),
	})
	return err
}

// GetBatch retrieves one withdrawal batch.
func (c *Client) GetBatch(id uint64) (*staking.Batch, error) {
	return getJSON[staking.Batch](c, fmt.Sprintf("/staking/batches/%d", id))
}

// ClaimBatch redeems the caller's holding of a funded batch.
func (c *Client) ClaimBatch(caller xdc.Address, id uint64) (*big.Int, error) {
	out, err := postJSON[struct {
		Paid *staking.Amount `json:"paid"`
	}](c, fmt.Sprintf("/staking/batches/%d/claim", id), map[string]any{
		"caller": caller.String(),
	})
	if err != nil {
		return nil, err
	}
	return (*big.Int)(out.Paid), nil
}

// Operators retrieves the listed operator addresses.
func (c *Client) Operators() ([]xdc.Address, error) {
	out, err := getJSON[[]xdc.Address](c, "/staking/operators")
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// GetOperator retrieves one operator record.
func (c *Client) GetOperator(addr xdc.Address) (*staking.Operator, error) {
	return getJSON[staking.Operator](c, "/staking/operators/"+addr.String())
}

// FilterEvents queries the committed-event log.
func (c *Client) FilterEvents(filter *events.EventFilter) ([]*events.FilteredEvent, error) {
	out, err := postJSON[[]*events.FilteredEvent](c, "/logs/event", filter)
	if err != nil {
		return nil, err
	}
	return *out, nil
}

// RawHTTPGet sends a GET request to the given path under the base URL.
func (c *Client) RawHTTPGet(path string) ([]byte, error) {
	return c.httpGET(c.url + path)
}

// RawHTTPPost sends a POST request to the given path under the base URL.
func (c *Client) RawHTTPPost(path string, payload any) ([]byte, error) {
	return c.httpPOST(c.url+path, payload)
}
