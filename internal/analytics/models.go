package analytics

// DashboardStats are the headline numbers of the admin dashboard.
type DashboardStats struct {
	TotalInquiries    int     `json:"totalInquiries"`
	TotalBookings     int     `json:"totalBookings"`
	PendingBookings   int     `json:"pendingBookings"`
	ConfirmedBookings int     `json:"confirmedBookings"`
	CancelledBookings int     `json:"cancelledBookings"`
	ConversionRate    float64 `json:"conversionRate"`
}

// MonthlyTrend counts the records created in one calendar month.
type MonthlyTrend struct {
	Month     string `json:"month"`
	Inquiries int    `json:"inquiries"`
	Bookings  int    `json:"bookings"`
}

// CountryBreakdown is one row of the inquiry country distribution.
type CountryBreakdown struct {
	Country    string  `json:"country"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// OrganizationBreakdown is one row of the inquiry organization distribution.
type OrganizationBreakdown struct {
	Organization string  `json:"organization"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// StatusDistribution is one row of the merged inquiry and booking status view.
type StatusDistribution struct {
	Status     string  `json:"status"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// TopExpedition counts the interest in one expedition across both record kinds.
type TopExpedition struct {
	Expedition string `json:"expedition"`
	Inquiries  int    `json:"inquiries"`
	Bookings   int    `json:"bookings"`
}

// Report bundles every aggregate view of one time window.
type Report struct {
	DashboardStats
	MonthlyData        []MonthlyTrend          `json:"monthlyData"`
	CountryData        []CountryBreakdown      `json:"countryData"`
	OrganizationData   []OrganizationBreakdown `json:"organizationData"`
	StatusDistribution []StatusDistribution    `json:"statusDistribution"`
	TopExpeditions     []TopExpedition         `json:"topExpeditions"`
}
