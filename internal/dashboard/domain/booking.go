package domain

// BookingParty — краткая карточка пользователя или гида внутри брони
type BookingParty struct {
	ID       ID     `json:"id"`
	Slug     string `json:"slug"`
	FullName string `json:"fullName"`
	Fullname string `json:"fullname"` // гиды приходят с fullname, пользователи с fullName
	Email    string `json:"email"`
	Photo    string `json:"profilePhoto"`
	Picture  string `json:"profilePicture"`
}

// Name — имя стороны независимо от регистра поля
func (p BookingParty) Name() string {
	if p.FullName != "" {
		return p.FullName
	}
	return p.Fullname
}

// Avatar — фото стороны, "" если нет
func (p BookingParty) Avatar() string {
	if p.Photo != "" {
		return p.Photo
	}
	return p.Picture
}

// Booking — бронь тура. В дашборде только чтение.
type Booking struct {
	ID                ID           `json:"id"`
	UserID            ID           `json:"userId"`
	GuideID           ID           `json:"guideId"`
	Destination       string       `json:"destination"`
	Contact           string       `json:"contact"`
	StartingLocation  string       `json:"startingLocation"`
	Accommodation     string       `json:"accommodation"`
	NumberOfAdults    int          `json:"numberOfAdults"`
	NumberOfChildren  int          `json:"numberOfChildren"`
	EstimatedDays     int          `json:"estimatedDays"`
	EstimatedPrice    float64      `json:"estimatedPrice"`
	StartDate         string       `json:"startDate"`
	EndDate           string       `json:"endDate"`
	BookingDate       string       `json:"bookingDate"`
	BookingMessage    string       `json:"bookingMessage"`
	CancelMessage     string       `json:"cancelMessage"`
	BookingType       string       `json:"bookingType"`
	BookingStatus     string       `json:"bookingStatus"`
	TravelStatus      string       `json:"travelStatus"`
	PlatformLiability bool         `json:"platformLiability"`
	CreatedAt         string       `json:"createdAt"`
	User              BookingParty `json:"User"`
	Guide             BookingParty `json:"Guide"`
}

// Travellers — взрослые + дети
func (b Booking) Travellers() int { return b.NumberOfAdults + b.NumberOfChildren }

// Travel statuses
const (
	TravelNotStarted = "not-started"
	TravelOngoing    = "on-going"
	TravelCompleted  = "completed"
)

// BookingGroups — брони по этапу поездки, порядок внутри группы сохраняется
type BookingGroups struct {
	Ongoing    []Booking
	NotStarted []Booking
	Completed  []Booking
	Other      []Booking
}

// GroupByTravelStatus раскладывает брони по travelStatus
func GroupByTravelStatus(bookings []Booking) BookingGroups {
	var g BookingGroups
	for _, b := range bookings {
		switch b.TravelStatus {
		case TravelOngoing:
			g.Ongoing = append(g.Ongoing, b)
		case TravelNotStarted:
			g.NotStarted = append(g.NotStarted, b)
		case TravelCompleted:
			g.Completed = append(g.Completed, b)
		default:
			g.Other = append(g.Other, b)
		}
	}
	return g
}
