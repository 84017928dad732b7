package devapi

import (
	"time"

	"gorm.io/datatypes"
)

// Storage models for the local backend. JSON tags match the production
// API's wire format exactly, inconsistencies included, so the dashboard
// cannot tell the two apart.

type User struct {
	ID             int       `gorm:"primaryKey" json:"id"`
	CreatedAt      time.Time `json:"-"`
	UpdatedAt      time.Time `json:"-"`
	Firstname      string    `json:"firstname"`
	Lastname       string    `json:"lastname"`
	Email          string    `gorm:"uniqueIndex;not null" json:"email"`
	Phone          string    `json:"phone"`
	Gender         string    `json:"gender"`
	Role           string    `json:"role"`
	Status         string    `json:"status"` // active | inactive
	HealthCenterID int       `json:"healthCenterId,omitempty"`
	Password       string    `json:"-"`
	ResetCode      string    `json:"-"`
}

type HealthCenter struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	CreatedAt  time.Time `json:"-"`
	UpdatedAt  time.Time `json:"-"`
	Name       string    `json:"name"`
	SectorID   int       `json:"sector_id"`
	HeadUserID int       `json:"headUserId,omitempty"`
}

type Born struct {
	ID               int       `gorm:"primaryKey" json:"id"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"-"`
	DateOfBirth      string    `json:"dateOfBirth"`
	DeliveryType     string    `json:"deliveryType"`
	MotherName       string    `json:"motherName"`
	MotherPhone      string    `json:"motherPhone"`
	MotherNationalID string    `json:"motherNationalId"`
	FatherName       string    `json:"fatherName"`
	FatherPhone      string    `json:"fatherPhone"`
	FatherNationalID string    `json:"fatherNationalId"`
	BabyCount        int       `json:"babyCount"`
	Status           string    `json:"status"`
	RejectReason     string    `json:"rejectReason,omitempty"`
	Leave            string    `json:"leave"`
	DischargeDate    string    `json:"dischargeDate,omitempty"`
	HomeVisitDate    string    `json:"homeVisitDate,omitempty"`
	HomeVisitComment string    `json:"homeVisitComment,omitempty"`
	HealthCenterID   int       `json:"healthCenterId"`
	SectorID         int       `json:"sector_id"`
	CellID           int       `json:"cell_id"`
	VillageID        int       `json:"village_id"`

	Babies       []Baby        `gorm:"foreignKey:BornID" json:"babies"`
	Appointments []Appointment `gorm:"foreignKey:BornID" json:"appointments"`
}

// Baby keeps its medication rows as a JSON column; medications have no
// table or endpoint of their own.
type Baby struct {
	ID              int            `gorm:"primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"-"`
	UpdatedAt       time.Time      `json:"-"`
	BornID          int            `gorm:"index" json:"bornId"`
	Name            string         `json:"name"`
	Gender          string         `json:"gender"`
	BirthWeight     float64        `json:"birthWeight"`
	DischargeWeight float64        `json:"dischargebirthWeight"`
	Medications     datatypes.JSON `json:"medications,omitempty"`
}

type Appointment struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	BornID    int       `gorm:"index" json:"bornId"`
	BabyID    int       `gorm:"index" json:"babyId"`
	Date      string    `json:"date"`
	Time      string    `json:"time"`
	Purpose   string    `json:"purpose"`
	Status    string    `json:"status"` // Scheduled | Completed | Cancelled
}

type AppointmentFeedback struct {
	ID            int       `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"-"`
	UpdatedAt     time.Time `json:"-"`
	AppointmentID int       `gorm:"index" json:"appointmentId"`
	BabyID        int       `json:"babyId"`
	Weight        float64   `json:"weight"`
	Status        string    `json:"status"`
	Note          string    `json:"note"`
}

type Notification struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"-"`
	UserID    int       `gorm:"index" json:"-"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
}

// Address hierarchy tables, seeded once.

type Province struct {
	ID        int        `gorm:"primaryKey" json:"id"`
	Name      string     `json:"name"`
	Districts []District `gorm:"foreignKey:ProvinceID" json:"districts"`
}

type District struct {
	ID         int      `gorm:"primaryKey" json:"id"`
	ProvinceID int      `gorm:"index" json:"-"`
	Name       string   `json:"name"`
	Sectors    []Sector `gorm:"foreignKey:DistrictID" json:"sectors"`
}

type Sector struct {
	ID         int    `gorm:"primaryKey" json:"id"`
	DistrictID int    `gorm:"index" json:"-"`
	Name       string `json:"name"`
	Cells      []Cell `gorm:"foreignKey:SectorID" json:"cells"`
}

type Cell struct {
	ID       int       `gorm:"primaryKey" json:"id"`
	SectorID int       `gorm:"index" json:"-"`
	Name     string    `json:"name"`
	Villages []Village `gorm:"foreignKey:CellID" json:"villages"`
}

type Village struct {
	ID     int    `gorm:"primaryKey" json:"id"`
	CellID int    `gorm:"index" json:"-"`
	Name   string `json:"name"`
}
