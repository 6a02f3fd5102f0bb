package domain

// MonthPoint — значение метрики за месяц. Users заполнен для
// userGrowth/guideGrowth, Bookings — для bookingGrowth.
type MonthPoint struct {
	Month    string `json:"month"`
	Users    int    `json:"users"`
	Bookings int    `json:"bookings"`
}

// Series — помесячный ряд и процент роста, посчитанный бэкендом
type Series struct {
	Data             []MonthPoint `json:"data"`
	GrowthPercentage string       `json:"growthPercentage"`
}

// Analytics — три ряда за выбранный год, заменяются только вместе
type Analytics struct {
	Year          int    `json:"year"`
	UserGrowth    Series `json:"userGrowth"`
	GuideGrowth   Series `json:"guideGrowth"`
	BookingGrowth Series `json:"bookingGrowth"`
}

// Metrics — сводные цифры главной страницы
type Metrics struct {
	TotalUsers    int     `json:"totalUsers"`
	TotalGuides   int     `json:"totalGuides"`
	TotalBookings int     `json:"totalBookings"`
	TotalEarnings float64 `json:"totalEarnings"`
}

// Overview — главная страница: метрики + последние заявки гидов
type Overview struct {
	Metrics        Metrics `json:"metrices"`
	RecentRequests []Guide `json:"recentGuidesRequest"`
}
