package pdf

// IssuerProfile is the static letterhead printed on every invoice page.
type IssuerProfile struct {
	Name         string
	Pan          string
	Branches     string
	HeadOffice   []string
	AccountNo    string
	AccountName  string
	BankName     string
	IfscCode     string
	Services     [][]string
	Phone        string
	Email        string
	Quotes       []string
	ThanksNote   string
	CreditTerms  string
	FallbackAddr string
}

func DefaultIssuer() IssuerProfile {
	return IssuerProfile{
		Name:     "Naresh Kumar M",
		Pan:      "PAN - AUQPN2096R",
		Branches: "Office Branches - Guduvancheri / MWC Chengalpattu",
		HeadOffice: []string{
			"Head Office:",
			"Door No -836,",
			"25th Street, B.V.Colony, Vyasarpadi,",
			"Chennai - 600039.",
		},
		AccountNo:   "0912101062689",
		AccountName: "NARESH KUMAR M",
		BankName:    "CANARA BANK",
		IfscCode:    "CNRB0000912",
		Services: [][]string{
			{"Accounting", "Auditing", "Tax Audit", "PAN / TAN", "Food License", "GST Returns"},
			{"Income Tax Returns", "TDS Returns", "ROC Compliances", "Financial Consultancy", "ISO Certification", "ISO Audit"},
			{"GEM Registration", "GST Registration", "MSME Registration", "Firm Registration", "Company Registration", "Other Services"},
		},
		Phone: "+91 9566135117",
		Email: "vyasarnaresh@gmail.com",
		Quotes: []string{
			"\"A day without laughter is a day wasted.\"",
			"\"Be with Smiley face\" | \"Help the needy.\"",
		},
		ThanksNote:   "Thank you for your business.",
		CreditTerms:  "30 DAYS Credit from date of invoice.",
		FallbackAddr: "23, first street, Nangooram Nagar, Guduvanchery - 603202",
	}
}
