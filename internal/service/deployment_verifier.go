package service

import (
	"context"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"go.uber.org/zap"

	"github.com/spec-kit/unifin/internal/chain"
	"github.com/spec-kit/unifin/internal/wallet"
)

// ContractReport is the deployment state of one contract.
type ContractReport struct {
	Name         string `json:"name"`
	Address      string `json:"address,omitempty"`
	Configured   bool   `json:"configured"`
	Deployed     bool   `json:"deployed"`
	CodeSize     int    `json:"code_size"`
	Admin        string `json:"admin,omitempty"`
	AdminMatches *bool  `json:"admin_matches,omitempty"`
	Error        string `json:"error,omitempty"`
}

// DeploymentReport summarises every configured contract.
type DeploymentReport struct {
	ChainID   int64            `json:"chain_id"`
	Contracts []ContractReport `json:"contracts"`
}

// OK reports whether every configured contract is deployed and, when checked, administered
// by the expected account.
func (r DeploymentReport) OK() bool {
	for _, c := range r.Contracts {
		if !c.Configured {
			continue
		}
		if !c.Deployed || c.Error != "" || (c.AdminMatches != nil && !*c.AdminMatches) {
			return false
		}
	}
	return true
}

// DeploymentVerifier checks contract code and admin accounts.
type DeploymentVerifier struct {
	contracts *chain.Contracts
	logger    *zap.Logger
}

// NewDeploymentVerifier constructs the verifier.
func NewDeploymentVerifier(contracts *chain.Contracts, logger *zap.Logger) *DeploymentVerifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DeploymentVerifier{contracts: contracts, logger: logger}
}

// Verify inspects every binding through p. expectedAdmin may be empty to skip the comparison.
func (v *DeploymentVerifier) Verify(ctx context.Context, p wallet.Provider, expectedAdmin string) (DeploymentReport, error) {
	id, err := chain.ChainID(ctx, p)
	if err != nil {
		return DeploymentReport{}, err
	}
	report := DeploymentReport{ChainID: id}

	for _, b := range v.contracts.All() {
		cr := ContractReport{Name: b.Name, Configured: b.Configured}
		if !b.Configured {
			report.Contracts = append(report.Contracts, cr)
			continue
		}
		cr.Address = b.Address.Hex()

		code, err := chain.Code(ctx, p, b.Address)
		if err != nil {
			cr.Error = err.Error()
			report.Contracts = append(report.Contracts, cr)
			continue
		}
		cr.CodeSize = len(code)
		cr.Deployed = len(code) > 0

		if _, ok := b.ABI.Methods["admin"]; ok && cr.Deployed {
			admin, err := readAddress(ctx, p, b, "admin")
			if err != nil {
				cr.Error = err.Error()
			} else {
				cr.Admin = admin.Hex()
				if expectedAdmin != "" {
					matches := strings.EqualFold(admin.Hex(), common.HexToAddress(expectedAdmin).Hex())
					cr.AdminMatches = &matches
				}
			}
		}
		v.logger.Info("contract verified",
			zap.String("contract", cr.Name),
			zap.String("address", cr.Address),
			zap.Bool("deployed", cr.Deployed))
		report.Contracts = append(report.Contracts, cr)
	}
	return report, nil
}
