package core

// DefaultSSTRate is the Malaysian SST service tax rate applied to new
// taxable line items unless overridden.
const DefaultSSTRate = 0.08

// DefaultSettings is the company identity a fresh installation starts with.
func DefaultSettings() CompanySettings {
	return CompanySettings{
		Name:        "Techfab Engineering Sdn Bhd",
		Address:     "No. 12, Jalan Perindustrian 3,\nTaman Perindustrian Puchong,\n47100 Puchong, Selangor",
		SSMNumber:   "201901012345 (1333221-A)",
		SSTRegNo:    "W10-1808-32000123",
		Phone:       "+60 3-8060 1234",
		Email:       "admin@techfab.com.my",
		BankName:    "Maybank",
		BankAccount: "5123 4567 8901",
		SSTRate:     DefaultSSTRate,
	}
}

// DefaultCustomers seeds the customer book on first run.
func DefaultCustomers() []Customer {
	return []Customer{
		{
			ID:      "cust-0001",
			Name:    "Syarikat Maju Jaya Sdn Bhd",
			Address: "Lot 8, Jalan Industri 5, 81200 Johor Bahru, Johor",
			Email:   "purchasing@majujaya.com.my",
			Phone:   "+60 7-234 5678",
		},
		{
			ID:      "cust-0002",
			Name:    "Delta Precision Works",
			Address: "23, Jalan TPP 1/10, Taman Perindustrian Puchong, 47100 Puchong",
			Email:   "ops@deltaprecision.my",
			Phone:   "+60 3-8061 9876",
		},
	}
}

// DefaultProducts seeds the catalog on first run.
func DefaultProducts() []Product {
	return []Product{
		{ID: "prod-0001", Name: "Mild Steel Fabrication (per kg)", Price: 8.50, TaxRate: DefaultSSTRate},
		{ID: "prod-0002", Name: "Stainless Steel 304 Sheet 4x8", Price: 420.00, TaxRate: DefaultSSTRate},
		{ID: "prod-0003", Name: "On-site Installation (per day)", Price: 850.00},
	}
}

// NewAppState returns the aggregate a fresh installation (or a factory
// reset) starts from: no documents, seeded settings and catalog. All
// slices are allocated so snapshots survive JSON round trips unchanged.
func NewAppState() AppState {
	return AppState{
		Documents: []Document{},
		Customers: DefaultCustomers(),
		Products:  DefaultProducts(),
		Settings:  DefaultSettings(),
	}
}

// Normalize allocates any nil slices in a decoded snapshot. Old backups
// predate the products catalog and may omit the field entirely; tolerant
// reading defaults it to empty rather than rejecting the snapshot.
func (s *AppState) Normalize() {
	if s.Documents == nil {
		s.Documents = []Document{}
	}
	if s.Customers == nil {
		s.Customers = []Customer{}
	}
	if s.Products == nil {
		s.Products = []Product{}
	}
	for i := range s.Documents {
		if s.Documents[i].Items == nil {
			s.Documents[i].Items = []LineItem{}
		}
	}
}
