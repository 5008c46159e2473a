// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

// =============================================================================
// DEMO DATA
// =============================================================================

// Manager is a relationship manager.
type Manager struct {
	ID     string
	Name   string
	Region string
}

// Client is a wealth-management client.
type Client struct {
	ID                    string
	Name                  string
	ManagerID             string
	Address               string
	RiskAppetite          string
	InvestmentPreferences []string
}

// Holding is one stock position of a client.
type Holding struct {
	ClientID     string
	StockSymbol  string
	Quantity     int
	CurrentValue float64
}

// Dataset is the data a FixtureAnswerer answers from.
type Dataset struct {
	Managers []Manager
	Clients  []Client
	Holdings []Holding
}

// DemoDataset returns the built-in data set.
func DemoDataset() Dataset {
	return Dataset{
		Managers: []Manager{
			{ID: "RM01", Name: "Anjali Sharma", Region: "Mumbai"},
			{ID: "RM02", Name: "Vikram Singh", Region: "Delhi"},
		},
		Clients: []Client{
			{
				ID: "C101", Name: "Shah Rukh Khan", ManagerID: "RM01",
				Address: "Mannat, Bandra, Mumbai", RiskAppetite: "High",
				InvestmentPreferences: []string{"Entertainment", "Tech"},
			},
			{
				ID: "C102", Name: "Virat Kohli", ManagerID: "RM02",
				Address: "Gurugram, Haryana", RiskAppetite: "Medium",
				InvestmentPreferences: []string{"Apparel", "Fintech", "Health"},
			},
			{
				ID: "C103", Name: "Priyanka Chopra", ManagerID: "RM01",
				Address: "Los Angeles, California", RiskAppetite: "High",
				InvestmentPreferences: []string{"Startups", "Real Estate"},
			},
		},
		Holdings: []Holding{
			{ClientID: "C101", StockSymbol: "RELIANCE", Quantity: 1000, CurrentValue: 2850000},
			{ClientID: "C101", StockSymbol: "TCS", Quantity: 500, CurrentValue: 1900000},
			{ClientID: "C102", StockSymbol: "HDFCBANK", Quantity: 2000, CurrentValue: 3100000},
			{ClientID: "C102", StockSymbol: "INFY", Quantity: 800, CurrentValue: 1200000},
			{ClientID: "C103", StockSymbol: "RELIANCE", Quantity: 1500, CurrentValue: 4275000},
			{ClientID: "C103", StockSymbol: "WIPRO", Quantity: 3000, CurrentValue: 1410000},
		},
	}
}

func (d Dataset) manager(id string) (Manager, bool) {
	for _, m := range d.Managers {
		if m.ID == id {
			return m, true
		}
	}
	return Manager{}, false
}

func (d Dataset) client(id string) (Client, bool) {
	for _, c := range d.Clients {
		if c.ID == id {
			return c, true
		}
	}
	return Client{}, false
}
