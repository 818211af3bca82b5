package domain

import "errors"

var (
	ErrProviderUnavailable = errors.New("wallet provider unavailable: please install a wallet extension")
	ErrUserRejected        = errors.New("request rejected by user")
	ErrNoAccounts          = errors.New("no accounts found")
	ErrConnectPending      = errors.New("wallet connection already in progress")
	ErrWalletNotConnected  = errors.New("please connect your wallet first")
	ErrUnknownRole         = errors.New("unknown role")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrSessionNotFound     = errors.New("session not found")
	ErrUnknownView         = errors.New("unknown view")
)
