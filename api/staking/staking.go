// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package staking exposes the pool over REST. State-changing endpoints
// take the caller identity from the request body; the server is an
// operator surface, not a public gateway.
package staking

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/GalaxySciTech/bbb-liquiditystaking/api/restutil"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/revenue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

type Staking struct {
	pool *pool.Pool
}

func New(p *pool.Pool) *Staking {
	return &Staking{pool: p}
}

func pathID(req *http.Request, name string) (uint64, error) {
	id, err := strconv.ParseUint(mux.Vars(req)[name], 10, 64)
	if err != nil {
		return 0, restutil.BadRequest(errors.WithMessage(err, name))
	}
	return id, nil
}

func pathAddress(req *http.Request, name string) (xdc.Address, error) {
	addr, err := xdc.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return xdc.Address{}, restutil.BadRequest(errors.WithMessage(err, name))
	}
	return *addr, nil
}

func parseBody(req *http.Request, v any) error {
	if err := restutil.ParseJSON(req.Body, v); err != nil {
		return restutil.BadRequest(errors.WithMessage(err, "body"))
	}
	return nil
}

// notFound remaps lookup reverts into 404, which reads better on GET.
func notFound(err error) error {
	if reverts.IsRevert(err) {
		return restutil.NotFound(err)
	}
	return err
}

func (s *Staking) handleStatus(w http.ResponseWriter, _ *http.Request) error {
	status, err := s.pool.Status()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, status)
}

func (s *Staking) handleParams(w http.ResponseWriter, _ *http.Request) error {
	params, err := s.pool.Params()
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, params)
}

func (s *Staking) handleGetRequest(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	r, err := s.pool.GetRequest(id)
	if err != nil {
		return notFound(err)
	}
	return restutil.WriteJSON(w, convertRequest(r))
}

func (s *Staking) handlePendingRequests(w http.ResponseWriter, _ *http.Request) error {
	ids, err := s.pool.PendingRequestIDs()
	if err != nil {
		return err
	}
	if ids == nil {
		ids = []uint64{}
	}
	return restutil.WriteJSON(w, ids)
}

func (s *Staking) handleGetBatch(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	b, err := s.pool.GetBatch(id)
	if err != nil {
		return notFound(err)
	}
	return restutil.WriteJSON(w, convertBatch(b))
}

func (s *Staking) handleGetHolding(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	holder, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	held, err := s.pool.HoldingOf(holder, id)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"held": amountOf(held)})
}

func (s *Staking) handleListOperators(w http.ResponseWriter, _ *http.Request) error {
	list, err := s.pool.Operators()
	if err != nil {
		return err
	}
	if list == nil {
		list = []xdc.Address{}
	}
	return restutil.WriteJSON(w, list)
}

func (s *Staking) handleGetOperator(w http.ResponseWriter, req *http.Request) error {
	addr, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	record, err := s.pool.GetOperator(addr)
	if err != nil {
		return notFound(err)
	}
	return restutil.WriteJSON(w, convertOperator(record))
}

func (s *Staking) handleOperatorOfCoinbase(w http.ResponseWriter, req *http.Request) error {
	coinbase, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	operator, err := s.pool.OperatorOf(coinbase)
	if err != nil {
		return notFound(err)
	}
	return restutil.WriteJSON(w, restutil.M{"operator": operator})
}

func (s *Staking) handleClaimableCommission(w http.ResponseWriter, req *http.Request) error {
	addr, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	amount, err := s.pool.ClaimableCommission(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"claimable": amountOf(amount)})
}

func (s *Staking) handleBalance(w http.ResponseWriter, req *http.Request) error {
	addr, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	balance, err := s.pool.BalanceOf(addr)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"balance": amountOf(balance)})
}

func (s *Staking) handleAllowance(w http.ResponseWriter, req *http.Request) error {
	owner, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	spender, err := pathAddress(req, "spender")
	if err != nil {
		return err
	}
	allowance, err := s.pool.Allowance(owner, spender)
	if err != nil {
		return err
	}
	return restutil.WriteJSON(w, restutil.M{"allowance": amountOf(allowance)})
}

func (s *Staking) handleGetAction(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	action, err := s.pool.GetAction(id)
	if err != nil {
		return notFound(err)
	}
	return restutil.WriteJSON(w, convertAction(action))
}

type stakeBody struct {
	Caller xdc.Address `json:"caller"`
	Value  *Amount     `json:"value"`
}

func (s *Staking) handleStake(w http.ResponseWriter, req *http.Request) error {
	var body stakeBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	shares, err := s.pool.Stake(body.Caller, bigOf(body.Value))
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"shares": amountOf(shares)})
}

type depositBody struct {
	Caller   xdc.Address `json:"caller"`
	Amount   *Amount     `json:"amount"`
	Receiver xdc.Address `json:"receiver"`
}

func (s *Staking) handleDeposit(w http.ResponseWriter, req *http.Request) error {
	var body depositBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	shares, err := s.pool.Deposit(body.Caller, bigOf(body.Amount), body.Receiver)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"shares": amountOf(shares)})
}

type mintBody struct {
	Caller   xdc.Address `json:"caller"`
	Shares   *Amount     `json:"shares"`
	Receiver xdc.Address `json:"receiver"`
}

func (s *Staking) handleMint(w http.ResponseWriter, req *http.Request) error {
	var body mintBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	cost, err := s.pool.Mint(body.Caller, bigOf(body.Shares), body.Receiver)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"cost": amountOf(cost)})
}

type withdrawBody struct {
	Caller xdc.Address `json:"caller"`
	Shares *Amount     `json:"shares"`
}

func (s *Staking) handleWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body withdrawBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	result, err := s.pool.Withdraw(body.Caller, bigOf(body.Shares))
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, convertWithdrawResult(result))
}

type redeemBody struct {
	Caller   xdc.Address `json:"caller"`
	Shares   *Amount     `json:"shares"`
	Owner    xdc.Address `json:"owner"`
	Receiver xdc.Address `json:"receiver"`
}

func (s *Staking) handleRedeem(w http.ResponseWriter, req *http.Request) error {
	var body redeemBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	result, err := s.pool.Redeem(body.Caller, bigOf(body.Shares), body.Receiver, body.Owner)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, convertWithdrawResult(result))
}

func (s *Staking) handleRequestWithdrawal(w http.ResponseWriter, req *http.Request) error {
	var body withdrawBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	id, err := s.pool.RequestWithdrawal(body.Caller, bigOf(body.Shares))
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"id": id})
}

type callerBody struct {
	Caller xdc.Address `json:"caller"`
}

func (s *Staking) handleApproveRequest(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.ApproveWithdrawal(body.Caller, id); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"approved": id})
}

func (s *Staking) handleRejectRequest(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.RejectWithdrawal(body.Caller, id); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"rejected": id})
}

type batchApproveBody struct {
	Caller xdc.Address `json:"caller"`
	IDs    []uint64    `json:"ids"`
}

func (s *Staking) handleBatchApprove(w http.ResponseWriter, req *http.Request) error {
	var body batchApproveBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	skipped, err := s.pool.BatchApproveWithdrawals(body.Caller, body.IDs)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	if skipped == nil {
		skipped = []uint64{}
	}
	return restutil.WriteJSON(w, restutil.M{"skipped": skipped})
}

func (s *Staking) handleRedeemBatch(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.RedeemBatch(body.Caller, id); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"redeemed": id})
}

func (s *Staking) handleClaimBatch(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	paid, err := s.pool.ClaimBatch(body.Caller, id)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paid": amountOf(paid)})
}

type transferClaimBody struct {
	Caller xdc.Address `json:"caller"`
	To     xdc.Address `json:"to"`
	Amount *Amount     `json:"amount"`
}

func (s *Staking) handleTransferClaim(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body transferClaimBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.TransferBatchClaim(body.Caller, body.To, id, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"transferred": id})
}

type tokenTransferBody struct {
	Caller xdc.Address `json:"caller"`
	From   xdc.Address `json:"from,omitempty"`
	To     xdc.Address `json:"to"`
	Amount *Amount     `json:"amount"`
}

func (s *Staking) handleTokenTransfer(w http.ResponseWriter, req *http.Request) error {
	var body tokenTransferBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	var err error
	if body.From.IsZero() {
		err = s.pool.Transfer(body.Caller, body.To, bigOf(body.Amount))
	} else {
		err = s.pool.TransferFrom(body.Caller, body.From, body.To, bigOf(body.Amount))
	}
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

type approveBody struct {
	Caller  xdc.Address `json:"caller"`
	Spender xdc.Address `json:"spender"`
	Amount  *Amount     `json:"amount"`
}

func (s *Staking) handleTokenApprove(w http.ResponseWriter, req *http.Request) error {
	var body approveBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.Approve(body.Caller, body.Spender, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

type amountBody struct {
	Caller xdc.Address `json:"caller"`
	Amount *Amount     `json:"amount"`
}

func (s *Staking) handleValidatorWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.WithdrawForValidator(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleReturnPrincipal(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.ReturnPrincipal(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleDepositRewards(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.DepositRewards(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleAddBuffer(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.AddToInstantExitBuffer(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleClaimCommission(w http.ResponseWriter, req *http.Request) error {
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	paid, err := s.pool.ClaimCommission(body.Caller)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paid": amountOf(paid)})
}

type kycBody struct {
	Caller xdc.Address `json:"caller"`
	Hash   xdc.Bytes32 `json:"hash"`
}

func (s *Staking) handleSubmitKYC(w http.ResponseWriter, req *http.Request) error {
	var body kycBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.SubmitKYC(body.Caller, body.Hash); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

type registerOperatorBody struct {
	Caller         xdc.Address `json:"caller"`
	Operator       xdc.Address `json:"operator"`
	MaxMasternodes uint64      `json:"maxMasternodes"`
}

func (s *Staking) handleRegisterOperator(w http.ResponseWriter, req *http.Request) error {
	var body registerOperatorBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.RegisterOperator(body.Caller, body.Operator, body.MaxMasternodes); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleApproveOperatorKYC(w http.ResponseWriter, req *http.Request) error {
	operator, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	var body kycBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.ApproveOperatorKYC(body.Caller, operator, body.Hash); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleRevokeOperatorKYC(w http.ResponseWriter, req *http.Request) error {
	operator, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.RevokeOperatorKYC(body.Caller, operator); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

type coinbaseBody struct {
	Caller   xdc.Address `json:"caller"`
	Coinbase xdc.Address `json:"coinbase"`
}

func (s *Staking) handleWhitelistCoinbase(w http.ResponseWriter, req *http.Request) error {
	var body coinbaseBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.WhitelistCoinbase(body.Caller, body.Coinbase); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleRemoveCoinbase(w http.ResponseWriter, req *http.Request) error {
	coinbase, err := pathAddress(req, "address")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.RemoveCoinbase(body.Caller, coinbase); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleSetMinStake(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.SetMinStake(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handleSetMinWithdraw(w http.ResponseWriter, req *http.Request) error {
	var body amountBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.SetMinWithdraw(body.Caller, bigOf(body.Amount)); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

type percentBody struct {
	Caller  xdc.Address `json:"caller"`
	Percent uint64      `json:"percent"`
}

func (s *Staking) handleSetMaxWithdrawablePercent(w http.ResponseWriter, req *http.Request) error {
	var body percentBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.SetMaxWithdrawablePercent(body.Caller, body.Percent); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"ok": true})
}

func (s *Staking) handlePause(w http.ResponseWriter, req *http.Request) error {
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.Pause(body.Caller); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paused": true})
}

func (s *Staking) handleUnpause(w http.ResponseWriter, req *http.Request) error {
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.Unpause(body.Caller); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"paused": false})
}

type treasuryBody struct {
	Caller   xdc.Address `json:"caller"`
	Treasury xdc.Address `json:"treasury"`
}

func (s *Staking) handleProposeTreasury(w http.ResponseWriter, req *http.Request) error {
	var body treasuryBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	id, err := s.pool.ProposeSetTreasury(body.Caller, body.Treasury)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"id": id})
}

type splitBody struct {
	Caller xdc.Address   `json:"caller"`
	Split  revenue.Split `json:"split"`
}

func (s *Staking) handleProposeSplit(w http.ResponseWriter, req *http.Request) error {
	var body splitBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	id, err := s.pool.ProposeSetSplit(body.Caller, body.Split)
	if err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"id": id})
}

func (s *Staking) handleExecuteProposal(w http.ResponseWriter, req *http.Request) error {
	id, err := pathID(req, "id")
	if err != nil {
		return err
	}
	var body callerBody
	if err := parseBody(req, &body); err != nil {
		return err
	}
	if err := s.pool.ExecuteProposal(body.Caller, id); err != nil {
		return restutil.ConvertRevert(err)
	}
	return restutil.WriteJSON(w, restutil.M{"executed": id})
}

func (s *Staking) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/status").
		Methods(http.MethodGet).
		Name("staking_get_status").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStatus))
	sub.Path("/params").
		Methods(http.MethodGet).
		Name("staking_get_params").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleParams))

	sub.Path("/stake").
		Methods(http.MethodPost).
		Name("staking_post_stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleStake))
	sub.Path("/deposit").
		Methods(http.MethodPost).
		Name("staking_post_deposit").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleDeposit))
	sub.Path("/mint").
		Methods(http.MethodPost).
		Name("staking_post_mint").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleMint))
	sub.Path("/withdraw").
		Methods(http.MethodPost).
		Name("staking_post_withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleWithdraw))
	sub.Path("/redeem").
		Methods(http.MethodPost).
		Name("staking_post_redeem").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRedeem))

	sub.Path("/requests/pending").
		Methods(http.MethodGet).
		Name("staking_get_pending_requests").
		HandlerFunc(restutil.WrapHandlerFunc(s.handlePendingRequests))
	sub.Path("/requests/approve-batch").
		Methods(http.MethodPost).
		Name("staking_post_batch_approve").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleBatchApprove))
	sub.Path("/requests/{id}").
		Methods(http.MethodGet).
		Name("staking_get_request").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetRequest))
	sub.Path("/requests").
		Methods(http.MethodPost).
		Name("staking_post_request").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRequestWithdrawal))
	sub.Path("/requests/{id}/approve").
		Methods(http.MethodPost).
		Name("staking_post_approve_request").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleApproveRequest))
	sub.Path("/requests/{id}/reject").
		Methods(http.MethodPost).
		Name("staking_post_reject_request").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRejectRequest))

	sub.Path("/batches/{id}").
		Methods(http.MethodGet).
		Name("staking_get_batch").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetBatch))
	sub.Path("/batches/{id}/holdings/{address}").
		Methods(http.MethodGet).
		Name("staking_get_holding").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetHolding))
	sub.Path("/batches/{id}/redeem").
		Methods(http.MethodPost).
		Name("staking_post_redeem_batch").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRedeemBatch))
	sub.Path("/batches/{id}/claim").
		Methods(http.MethodPost).
		Name("staking_post_claim_batch").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaimBatch))
	sub.Path("/batches/{id}/transfer").
		Methods(http.MethodPost).
		Name("staking_post_transfer_claim").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleTransferClaim))

	sub.Path("/token/transfer").
		Methods(http.MethodPost).
		Name("staking_post_token_transfer").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleTokenTransfer))
	sub.Path("/token/approve").
		Methods(http.MethodPost).
		Name("staking_post_token_approve").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleTokenApprove))
	sub.Path("/accounts/{address}/balance").
		Methods(http.MethodGet).
		Name("staking_get_balance").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleBalance))
	sub.Path("/accounts/{address}/allowance/{spender}").
		Methods(http.MethodGet).
		Name("staking_get_allowance").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleAllowance))

	sub.Path("/validator/withdraw").
		Methods(http.MethodPost).
		Name("staking_post_validator_withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleValidatorWithdraw))
	sub.Path("/validator/return").
		Methods(http.MethodPost).
		Name("staking_post_return_principal").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleReturnPrincipal))
	sub.Path("/validator/rewards").
		Methods(http.MethodPost).
		Name("staking_post_deposit_rewards").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleDepositRewards))
	sub.Path("/buffer/add").
		Methods(http.MethodPost).
		Name("staking_post_add_buffer").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleAddBuffer))

	sub.Path("/operators").
		Methods(http.MethodGet).
		Name("staking_get_operators").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleListOperators))
	sub.Path("/operators").
		Methods(http.MethodPost).
		Name("staking_post_register_operator").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRegisterOperator))
	sub.Path("/operators/{address}").
		Methods(http.MethodGet).
		Name("staking_get_operator").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetOperator))
	sub.Path("/operators/{address}/kyc-approve").
		Methods(http.MethodPost).
		Name("staking_post_approve_operator_kyc").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleApproveOperatorKYC))
	sub.Path("/operators/{address}/kyc-revoke").
		Methods(http.MethodPost).
		Name("staking_post_revoke_operator_kyc").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRevokeOperatorKYC))
	sub.Path("/operators/{address}/commission").
		Methods(http.MethodGet).
		Name("staking_get_commission").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaimableCommission))
	sub.Path("/commission/claim").
		Methods(http.MethodPost).
		Name("staking_post_claim_commission").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleClaimCommission))

	sub.Path("/coinbases").
		Methods(http.MethodPost).
		Name("staking_post_whitelist_coinbase").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleWhitelistCoinbase))
	sub.Path("/coinbases/{address}").
		Methods(http.MethodGet).
		Name("staking_get_coinbase_operator").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleOperatorOfCoinbase))
	sub.Path("/coinbases/{address}/remove").
		Methods(http.MethodPost).
		Name("staking_post_remove_coinbase").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleRemoveCoinbase))

	sub.Path("/kyc").
		Methods(http.MethodPost).
		Name("staking_post_submit_kyc").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSubmitKYC))

	sub.Path("/admin/min-stake").
		Methods(http.MethodPost).
		Name("staking_post_min_stake").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSetMinStake))
	sub.Path("/admin/min-withdraw").
		Methods(http.MethodPost).
		Name("staking_post_min_withdraw").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSetMinWithdraw))
	sub.Path("/admin/max-withdrawable-percent").
		Methods(http.MethodPost).
		Name("staking_post_max_withdrawable").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleSetMaxWithdrawablePercent))
	sub.Path("/admin/pause").
		Methods(http.MethodPost).
		Name("staking_post_pause").
		HandlerFunc(restutil.WrapHandlerFunc(s.handlePause))
	sub.Path("/admin/unpause").
		Methods(http.MethodPost).
		Name("staking_post_unpause").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleUnpause))

	sub.Path("/governance/treasury").
		Methods(http.MethodPost).
		Name("staking_post_propose_treasury").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleProposeTreasury))
	sub.Path("/governance/split").
		Methods(http.MethodPost).
		Name("staking_post_propose_split").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleProposeSplit))
	sub.Path("/governance/actions/{id}").
		Methods(http.MethodGet).
		Name("staking_get_action").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleGetAction))
	sub.Path("/governance/actions/{id}/execute").
		Methods(http.MethodPost).
		Name("staking_post_execute_action").
		HandlerFunc(restutil.WrapHandlerFunc(s.handleExecuteProposal))
}
