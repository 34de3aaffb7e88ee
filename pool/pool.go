// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package pool orchestrates the liquid staking engine: deposits, the
// instant and delayed exit paths, validator capital movement, reward
// distribution and governance. Every public method is one atomic
// operation.
package pool

import (
	"math/big"
	"strconv"

	"github.com/GalaxySciTech/bbb-liquiditystaking/log"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/operators"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/params"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/queue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/revenue"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/reverts"
	"github.com/GalaxySciTech/bbb-liquiditystaking/pool/shares"
	"github.com/GalaxySciTech/bbb-liquiditystaking/runtime"
	"github.com/GalaxySciTech/bbb-liquiditystaking/sslot"
	"github.com/GalaxySciTech/bbb-liquiditystaking/timelock"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

var logger = log.WithContext("pkg", "pool")

var (
	slotTotalPooled = xdc.Blake2b([]byte("pool.total-pooled"))
	slotBuffer      = xdc.Blake2b([]byte("pool.instant-exit-buffer"))
	slotOutstanding = xdc.Blake2b([]byte("pool.validator-outstanding"))
)

// WrappedToken is the consumed wrapped-XDC fungible-token capability
// used by the Deposit/Mint paths.
type WrappedToken interface {
	TransferFrom(from, to xdc.Address, amount *big.Int) error
	Transfer(to xdc.Address, amount *big.Int) error
}

// Pool is the liquid staking engine facade. All methods are safe for
// concurrent use; the runtime serializes them.
type Pool struct {
	rt        *runtime.Runtime
	addr      xdc.Address
	wrapped   WrappedToken
	registrar operators.ValidatorRegistrar
}

// Option configures a Pool.
type Option func(*Pool)

// WithWrappedToken wires the wrapped-XDC token capability.
func WithWrappedToken(token WrappedToken) Option {
	return func(p *Pool) { p.wrapped = token }
}

// WithRegistrar wires the masternode-registration capability.
func WithRegistrar(registrar operators.ValidatorRegistrar) Option {
	return func(p *Pool) { p.registrar = registrar }
}

// New creates a Pool over the given runtime. addr is the pool contract
// address holding all engine state.
func New(rt *runtime.Runtime, addr xdc.Address, opts ...Option) *Pool {
	p := &Pool{rt: rt, addr: addr, registrar: operators.NoopRegistrar}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// mods binds all storage-backed modules to one operation's state.
type mods struct {
	params      *params.Params
	ledger      *shares.Ledger
	registry    *operators.Registry
	dist        *revenue.Distributor
	queue       *queue.Queue
	timelock    *timelock.Timelock
	totalPooled *sslot.Uint256
	buffer      *sslot.Uint256
	outstanding *sslot.Uint256
}

func (p *Pool) mods(env *runtime.Env) *mods {
	ctx := sslot.NewContext(p.addr, env.State())
	return &mods{
		params:      params.New(ctx),
		ledger:      shares.New(ctx),
		registry:    operators.New(ctx, p.registrar),
		dist:        revenue.New(ctx),
		queue:       queue.New(ctx),
		timelock:    timelock.New(ctx),
		totalPooled: sslot.NewUint256(ctx, slotTotalPooled),
		buffer:      sslot.NewUint256(ctx, slotBuffer),
		outstanding: sslot.NewUint256(ctx, slotOutstanding),
	}
}

// Init seeds the genesis configuration. It must run exactly once.
func (p *Pool) Init(admin, treasury xdc.Address) error {
	return p.rt.Transact(admin, nil, func(env *runtime.Env) error {
		m := p.mods(env)
		current, err := m.params.Admin()
		if err != nil {
			return err
		}
		if !current.IsZero() {
			return reverts.StateConflict("Already initialized")
		}
		if err := m.params.Init(admin); err != nil {
			return err
		}
		if err := m.dist.Init(treasury); err != nil {
			return err
		}
		env.Log("Initialized",
			runtime.A("admin", admin.String()),
			runtime.A("treasury", treasury.String()))
		logger.Info("pool initialized", "admin", admin, "treasury", treasury)
		return nil
	})
}

func (m *mods) requireAdmin(caller xdc.Address) error {
	admin, err := m.params.Admin()
	if err != nil {
		return err
	}
	if admin.IsZero() || caller != admin {
		return reverts.AccessControl("Caller is not admin")
	}
	return nil
}

func (m *mods) requireNotPaused() error {
	paused, err := m.params.Paused()
	if err != nil {
		return err
	}
	if paused {
		return reverts.StateConflict("Pool is paused")
	}
	return nil
}

func itoa(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// totals reads totalShares and totalPooled in one go. totalShares is
// the share ledger's total supply; the two can never diverge.
func (m *mods) totals() (totalShares, totalPooled *big.Int, err error) {
	if totalShares, err = m.ledger.TotalSupply(); err != nil {
		return
	}
	totalPooled, err = m.totalPooled.Get()
	return
}
