package domain

// Bank is a destination bank offered on the transfer form.
type Bank struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Banks lists the supported destination banks in display order.
var Banks = []Bank{
	{Code: "AC", Name: "Access Bank"},
	{Code: "GTB", Name: "Guaranteed Trust Bank"},
	{Code: "UBA", Name: "UBA Bank"},
	{Code: "FB", Name: "First Bank"},
	{Code: "FIDB", Name: "Fidelity Bank"},
	{Code: "SIBTC", Name: "Stanbic IBTC Bank"},
	{Code: "STB", Name: "Sterling Bank"},
	{Code: "WB", Name: "Wema Bank"},
	{Code: "UB", Name: "Union Bank"},
	{Code: "ZB", Name: "Zenith Bank"},
}

// LookupBank returns the bank with the given code.
func LookupBank(code string) (Bank, bool) {
	for _, b := range Banks {
		if b.Code == code {
			return b, true
		}
	}
	return Bank{}, false
}
