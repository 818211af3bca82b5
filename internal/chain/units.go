package chain

import (
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/params"
)

const etherDecimals = 18

var (
	weiPerEther = big.NewInt(params.Ether)

	// ErrInvalidAmount is returned for amounts that are not non-negative decimals.
	ErrInvalidAmount = errors.New("invalid ether amount")
)

// ParseEther converts a decimal ether string such as "1.5" into wei.
func ParseEther(value string) (*big.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, ErrInvalidAmount
	}
	whole, frac, _ := strings.Cut(value, ".")
	if whole == "" && frac == "" {
		return nil, ErrInvalidAmount
	}
	if !isDigits(whole) || !isDigits(frac) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if len(frac) > etherDecimals {
		return nil, fmt.Errorf("%w: more than %d decimal places", ErrInvalidAmount, etherDecimals)
	}

	digits := whole + frac + strings.Repeat("0", etherDecimals-len(frac))
	wei, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return wei, nil
}

// FormatEther renders wei as a decimal ether string, keeping at least one fractional digit.
func FormatEther(wei *big.Int) string {
	if wei == nil {
		return "0.0"
	}
	sign := ""
	abs := new(big.Int).Set(wei)
	if abs.Sign() < 0 {
		sign = "-"
		abs.Neg(abs)
	}
	whole, frac := new(big.Int).QuoRem(abs, weiPerEther, new(big.Int))
	fracStr := frac.String()
	fracStr = strings.Repeat("0", etherDecimals-len(fracStr)) + fracStr
	fracStr = strings.TrimRight(fracStr, "0")
	if fracStr == "" {
		fracStr = "0"
	}
	return sign + whole.String() + "." + fracStr
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
