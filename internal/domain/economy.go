package domain

// EconomyState is the persisted coin balance and boost flag of one user.
type EconomyState struct {
	Coins       int  `json:"coins"`
	BoostActive bool `json:"boostActive"`
}

// EconomyStatus is the derived view handed to callers.
type EconomyStatus struct {
	Coins          int  `json:"coins"`
	BoostActive    bool `json:"hasBoost"`
	FilterEligible bool `json:"canFilter"`
}

// CoinPackage is a purchasable coin top-up.
type CoinPackage struct {
	Amount int    `json:"amount"`
	Price  string `json:"price"`
}

// CoinPackages is the top-up catalogue offered to clients.
var CoinPackages = []CoinPackage{
	{Amount: 4, Price: "$2.99"},
	{Amount: 10, Price: "$4.99"},
	{Amount: 15, Price: "$9.99"},
	{Amount: 30, Price: "$19.99"},
}
