package models

// PrimePortfolio represents a Prime portfolio
type PrimePortfolio struct {
	Id   string
	Name string
}

// PrimeWallet represents a Prime wallet
type PrimeWallet struct {
	Id     string
	Name   string
	Symbol string
	Type   string
}
