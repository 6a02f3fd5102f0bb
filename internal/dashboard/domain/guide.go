package domain

import "strings"

// Registration statuses
const (
	RegistrationPending    = "pending"
	RegistrationApproved   = "approved"
	RegistrationRegistered = "registered"
	RegistrationRejected   = "rejected"
)

// Suspension actions for POST /admin/guide-suspension
const (
	SuspensionSuspend = "suspended"
	SuspensionUnblock = "active"
)

// Review actions for PATCH /admin/verify-request/{id}
const (
	ReviewAccept = "accept"
	ReviewReject = "reject"
)

type SecurityMetadata struct {
	IsSuspended          bool `json:"isSuspended"`
	WrongPasswordCounter int  `json:"wrongPasswordCounter"`
}

type Availability struct {
	IsActivate  bool `json:"isActivate"`
	IsAvailable bool `json:"isAvailable"`
}

// Guide — гид или заявка гида (одна и та же запись бэкенда)
type Guide struct {
	ID                 ID               `json:"id"`
	Slug               string           `json:"slug"`
	FullName           string           `json:"fullname"`
	Email              string           `json:"email"`
	Contact            string           `json:"contact"`
	Verified           bool             `json:"verified"`
	RegistrationStatus string           `json:"registrationStatus"`
	GuideType          []string         `json:"guideType"`
	LanguageSpeak      []string         `json:"languageSpeak"`
	ProfilePhoto       string           `json:"profilePhoto"`
	LicensePhoto       string           `json:"licensePhoto"`
	CertificationPhoto string           `json:"certificationPhoto"`
	GuidingAreas       []string         `json:"guidingAreas"`
	SelfVideo          string           `json:"selfVideo"`
	AboutMe            string           `json:"aboutMe"`
	Experiences        []string         `json:"experiences"`
	Security           SecurityMetadata `json:"securityMetadata"`
	Availability       Availability     `json:"availability"`
	ProfileViews       int              `json:"profileviews"`
	LastActiveAt       string           `json:"lastActiveAt"`
	CreatedAt          string           `json:"createdAt"`
	UpdatedAt          string           `json:"updatedAt"`
}

// Suspended — гид заблокирован админом
func (g Guide) Suspended() bool { return g.Security.IsSuspended }

// IsValidSuspension проверяет действие блокировки
func IsValidSuspension(action string) bool {
	return action == SuspensionSuspend || action == SuspensionUnblock
}

// IsValidReview проверяет действие по заявке
func IsValidReview(action string) bool {
	return action == ReviewAccept || action == ReviewReject
}

// MatchesSearch — поиск заявок по имени или email (без учёта регистра)
func (g Guide) MatchesSearch(q string) bool {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(g.FullName), q) ||
		strings.Contains(strings.ToLower(g.Email), q)
}
