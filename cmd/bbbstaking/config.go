// Copyright (c) 2025 The bbb-liquiditystaking developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"math/big"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/GalaxySciTech/bbb-liquiditystaking/pool"
	"github.com/GalaxySciTech/bbb-liquiditystaking/state"
	"github.com/GalaxySciTech/bbb-liquiditystaking/xdc"
)

// GenesisConfig seeds a fresh instance: the admin and treasury
// identities, optional parameter overrides and prefunded accounts.
type GenesisConfig struct {
	Admin                  string           `yaml:"admin"`
	Treasury               string           `yaml:"treasury"`
	MinStake               string           `yaml:"minStake,omitempty"`
	MinWithdraw            string           `yaml:"minWithdraw,omitempty"`
	MaxWithdrawablePercent uint64           `yaml:"maxWithdrawablePercent,omitempty"`
	Accounts               []GenesisAccount `yaml:"accounts,omitempty"`
}

type GenesisAccount struct {
	Address string `yaml:"address"`
	Balance string `yaml:"balance"`
}

// LoadGenesisConfig reads and validates a yaml genesis file.
func LoadGenesisConfig(path string) (*GenesisConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WithMessage(err, "read genesis config")
	}
	var config GenesisConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, errors.WithMessage(err, "parse genesis config")
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return &config, nil
}

func (c *GenesisConfig) validate() error {
	if _, err := xdc.ParseAddress(c.Admin); err != nil {
		return errors.WithMessage(err, "genesis admin")
	}
	if _, err := xdc.ParseAddress(c.Treasury); err != nil {
		return errors.WithMessage(err, "genesis treasury")
	}
	for _, amount := range []string{c.MinStake, c.MinWithdraw} {
		if amount == "" {
			continue
		}
		if _, ok := new(big.Int).SetString(amount, 10); !ok {
			return errors.Errorf("malformed genesis amount: %q", amount)
		}
	}
	if c.MaxWithdrawablePercent > 100 {
		return errors.New("maxWithdrawablePercent exceeds 100")
	}
	for _, account := range c.Accounts {
		if _, err := xdc.ParseAddress(account.Address); err != nil {
			return errors.WithMessagef(err, "genesis account %q", account.Address)
		}
		if _, ok := new(big.Int).SetString(account.Balance, 10); !ok {
			return errors.Errorf("malformed genesis balance: %q", account.Balance)
		}
	}
	return nil
}

// Seed funds the genesis accounts and initializes the pool. It is a
// no-op when the pool is already initialized.
func (c *GenesisConfig) Seed(st *state.State, p *pool.Pool) error {
	view, err := p.Params()
	if err != nil {
		return err
	}
	if !view.Admin.IsZero() {
		return nil
	}

	for _, account := range c.Accounts {
		addr := xdc.MustParseAddress(account.Address)
		balance, _ := new(big.Int).SetString(account.Balance, 10)
		if err := st.SetBalance(addr, balance); err != nil {
			return err
		}
	}
	if err := st.Commit(); err != nil {
		return err
	}

	admin := xdc.MustParseAddress(c.Admin)
	treasury := xdc.MustParseAddress(c.Treasury)
	if err := p.Init(admin, treasury); err != nil {
		return err
	}

	if c.MinStake != "" {
		v, _ := new(big.Int).SetString(c.MinStake, 10)
		if err := p.SetMinStake(admin, v); err != nil {
			return err
		}
	}
	if c.MinWithdraw != "" {
		v, _ := new(big.Int).SetString(c.MinWithdraw, 10)
		if err := p.SetMinWithdraw(admin, v); err != nil {
			return err
		}
	}
	if c.MaxWithdrawablePercent != 0 {
		if err := p.SetMaxWithdrawablePercent(admin, c.MaxWithdrawablePercent); err != nil {
			return err
		}
	}
	return nil
}
