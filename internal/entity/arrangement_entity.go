package entity

import (
	"time"

	"github.com/google/uuid"
)

type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
)

type DocGenerationStatus string

const (
	DocGenNotStarted DocGenerationStatus = "not_started"
	DocGenRunning    DocGenerationStatus = "generating"
	DocGenCompleted  DocGenerationStatus = "completed"
	DocGenPartial    DocGenerationStatus = "partial"
	DocGenFailed     DocGenerationStatus = "failed"
)

type Arrangement struct {
	Id           uuid.UUID
	TranscriptId uuid.UUID

	DeceasedName      string
	ServiceDate       string
	ServiceTime       string
	ServiceLocation   string
	ServiceType       string
	DispositionMethod string
	NextOfKinName     string
	NextOfKinPhone    string

	Data                ArrangementData
	GeneratedDocuments  map[DocumentType]uuid.UUID
	DocGenerationStatus DocGenerationStatus
	ApprovalStatus      ApprovalStatus
	ApprovedAt          *time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// ApplyData replaces the extracted data and refreshes the summary columns.
func (a *Arrangement) ApplyData(d ArrangementData) {
	a.Data = d
	a.DeceasedName = d.Deceased.FullName
	a.ServiceDate = d.Service.Date
	a.ServiceTime = d.Service.Time
	a.ServiceLocation = d.Service.Location
	a.ServiceType = d.Service.Type
	a.DispositionMethod = d.Disposition.Method
	a.NextOfKinName = d.NextOfKin.Name
	a.NextOfKinPhone = d.NextOfKin.Phone
}

// ArrangementData is the structure the LLM extracts from a transcript.
type ArrangementData struct {
	Deceased        DeceasedInfo    `json:"deceased"`
	Service         ServiceInfo     `json:"service"`
	Disposition     DispositionInfo `json:"disposition"`
	NextOfKin       Contact         `json:"nextOfKin"`
	Survivors       []Survivor      `json:"survivors,omitempty"`
	Obituary        ObituaryInfo    `json:"obituary"`
	Financial       FinancialInfo   `json:"financial"`
	SpecialRequests []string        `json:"specialRequests,omitempty"`
	Notes           string          `json:"notes,omitempty"`
}

type DeceasedInfo struct {
	FullName         string `json:"fullName"`
	PreferredName    string `json:"preferredName,omitempty"`
	DateOfBirth      string `json:"dateOfBirth,omitempty"`
	DateOfDeath      string `json:"dateOfDeath,omitempty"`
	PlaceOfBirth     string `json:"placeOfBirth,omitempty"`
	PlaceOfDeath     string `json:"placeOfDeath,omitempty"`
	Age              string `json:"age,omitempty"`
	Gender           string `json:"gender,omitempty"`
	MaritalStatus    string `json:"maritalStatus,omitempty"`
	SpouseName       string `json:"spouseName,omitempty"`
	FatherName       string `json:"fatherName,omitempty"`
	MotherMaidenName string `json:"motherMaidenName,omitempty"`
	Occupation       string `json:"occupation,omitempty"`
	Education        string `json:"education,omitempty"`
	MilitaryService  string `json:"militaryService,omitempty"`
	Religion         string `json:"religion,omitempty"`
	Address          string `json:"address,omitempty"`
}

type ServiceInfo struct {
	Type        string   `json:"type,omitempty"`
	Date        string   `json:"date,omitempty"`
	Time        string   `json:"time,omitempty"`
	Location    string   `json:"location,omitempty"`
	Officiant   string   `json:"officiant,omitempty"`
	Visitation  string   `json:"visitation,omitempty"`
	Music       []string `json:"music,omitempty"`
	Readings    []string `json:"readings,omitempty"`
	Pallbearers []string `json:"pallbearers,omitempty"`
	Flowers     string   `json:"flowers,omitempty"`
}

type DispositionInfo struct {
	Method    string `json:"method,omitempty"`
	Cemetery  string `json:"cemetery,omitempty"`
	Plot      string `json:"plot,omitempty"`
	Crematory string `json:"crematory,omitempty"`
	Container string `json:"container,omitempty"`
}

type Contact struct {
	Name         string `json:"name,omitempty"`
	Relationship string `json:"relationship,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Email        string `json:"email,omitempty"`
	Address      string `json:"address,omitempty"`
}

type Survivor struct {
	Name         string `json:"name"`
	Relationship string `json:"relationship,omitempty"`
}

type ObituaryInfo struct {
	Highlights   []string `json:"highlights,omitempty"`
	Hobbies      []string `json:"hobbies,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
	Memorials    string   `json:"memorials,omitempty"`
}

type LineItem struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type FinancialInfo struct {
	Items         []LineItem `json:"items,omitempty"`
	Total         float64    `json:"total,omitempty"`
	Deposit       float64    `json:"deposit,omitempty"`
	PaymentMethod string     `json:"paymentMethod,omitempty"`
}
