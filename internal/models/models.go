package models

import "time"

// Born statuses as the upstream API spells them.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Appointment statuses.
const (
	AppointmentScheduled = "Scheduled"
	AppointmentCompleted = "Completed"
	AppointmentCancelled = "Cancelled"
)

// Feedback statuses.
const (
	FeedbackHealthy       = "Healthy"
	FeedbackNeedsFollowUp = "Needs Follow-up"
	FeedbackReferred      = "Referred"
	FeedbackCritical      = "Critical"
)

// Roles. The supervisor role keeps the upstream's long spelling.
const (
	RoleDataManager = "data_manager"
	RoleNurse       = "nurse"
	RoleDoctor      = "doctor"
	RoleSupervisor  = "head_of_community_workers_at_health_center"
)

// Born is the top-level maternity-event record ("born record").
type Born struct {
	ID               int    `json:"id"`
	DateOfBirth      string `json:"dateOfBirth"`
	DeliveryType     string `json:"deliveryType"`
	MotherName       string `json:"motherName"`
	MotherPhone      string `json:"motherPhone"`
	MotherNationalID string `json:"motherNationalId"`
	FatherName       string `json:"fatherName"`
	FatherPhone      string `json:"fatherPhone"`
	FatherNationalID string `json:"fatherNationalId"`
	BabyCount        int    `json:"babyCount"`
	Status           string `json:"status"`
	RejectReason     string `json:"rejectReason,omitempty"`
	Leave            string `json:"leave"` // "yes" | "no"
	DischargeDate    string `json:"dischargeDate,omitempty"`
	HomeVisitDate    string `json:"homeVisitDate,omitempty"`
	HomeVisitComment string `json:"homeVisitComment,omitempty"`
	HealthCenterID   int    `json:"healthCenterId"`
	SectorID         int    `json:"sector_id"`
	CellID           int    `json:"cell_id"`
	VillageID        int    `json:"village_id"`

	Babies       []Baby        `json:"babies,omitempty"`
	Appointments []Appointment `json:"appointments,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitempty"`
}

// CanTransition reports whether a born record may move between two statuses.
// pending fans out to approved/rejected; after that the supervisor may flip
// between approved and rejected, but nothing returns to pending.
func CanTransition(from, to string) bool {
	switch from {
	case StatusPending:
		return to == StatusApproved || to == StatusRejected
	case StatusApproved:
		return to == StatusRejected
	case StatusRejected:
		return to == StatusApproved
	}
	return false
}

// Baby belongs to exactly one born record.
type Baby struct {
	ID              int          `json:"id"`
	BornID          int          `json:"bornId"`
	Name            string       `json:"name"`
	Gender          string       `json:"gender"`
	BirthWeight     float64      `json:"birthWeight"`
	DischargeWeight float64      `json:"dischargebirthWeight"`
	Medications     []Medication `json:"medications,omitempty"`
}

// Medication rows travel inside the baby payload; they have no endpoint of
// their own.
type Medication struct {
	Name      string `json:"name"`
	Dose      string `json:"dose"`
	Frequency string `json:"frequency"`
}

// Appointment is a scheduled follow-up visit for one baby of a born record.
type Appointment struct {
	ID      int    `json:"id"`
	BornID  int    `json:"bornId"`
	BabyID  int    `json:"babyId"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Purpose string `json:"purpose"`
	Status  string `json:"status"`
}

// AppointmentFeedback is the clinical outcome recorded against an
// appointment. Write-once; there is no edit endpoint.
type AppointmentFeedback struct {
	ID            int     `json:"id"`
	AppointmentID int     `json:"appointmentId"`
	BabyID        int     `json:"babyId"`
	Weight        float64 `json:"weight"`
	Status        string  `json:"status"`
	Note          string  `json:"note"`
}

type HealthCenter struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SectorID   int    `json:"sector_id"`
	HeadUserID int    `json:"headUserId,omitempty"`
}

type User struct {
	ID             int    `json:"id"`
	Firstname      string `json:"firstname"`
	Lastname       string `json:"lastname"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	Role           string `json:"role"`
	Status         string `json:"status"` // active | inactive
	HealthCenterID int    `json:"healthCenterId,omitempty"`
}

// FullName is what list pages search against.
func (u User) FullName() string { return u.Firstname + " " + u.Lastname }

type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	IsRead    bool      `json:"isRead"`
	CreatedAt time.Time `json:"createdAt"`
}

// Address hierarchy, fetched once as a nested tree.
type Province struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Districts []District `json:"districts,omitempty"`
}

type District struct {
	ID      int      `json:"id"`
	Name    string   `json:"name"`
	Sectors []Sector `json:"sectors,omitempty"`
}

type Sector struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Cells []Cell `json:"cells,omitempty"`
}

type Cell struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Villages []Village `json:"villages,omitempty"`
}

type Village struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Statistics backs the dashboard summary cards.
type Statistics struct {
	TotalUsers           int            `json:"totalUsers"`
	Users                map[string]int `json:"users"`
	TotalBorns           int            `json:"totalBorns"`
	TotalBabies          int            `json:"totalBabies"`
	TotalHealthCenters   int            `json:"totalHealthCenters"`
	TotalAppointments    int            `json:"totalAppointments"`
	AppointmentsByStatus map[string]int `json:"appointmentsByStatus"`
}

// ReportRecord is one denormalized row of the generated born report.
type ReportRecord struct {
	DateOfBirth  string            `json:"dateOfBirth"`
	HealthCenter string            `json:"healthCenter"`
	MotherName   string            `json:"motherName"`
	DeliveryType string            `json:"deliveryType"`
	Leave        string            `json:"leave"`
	Babies       []ReportBaby      `json:"babies"`
	Appointments []ReportAppointed `json:"appointments"`
}

type ReportBaby struct {
	BabyName    string   `json:"babyName"`
	Gender      string   `json:"gender"`
	BirthWeight float64  `json:"birthWeight"`
	Medications []string `json:"medications"`
}

type ReportAppointed struct {
	AppointmentDate string                `json:"appointmentDate"`
	Feedback        []AppointmentFeedback `json:"feedback"`
}

// ReportSummary is the totals block above the report table.
type ReportSummary struct {
	TotalRecords      int `json:"totalRecords"`
	TotalBabies       int `json:"totalBabies"`
	TotalAppointments int `json:"totalAppointments"`
	Discharged        int `json:"discharged"`
}
