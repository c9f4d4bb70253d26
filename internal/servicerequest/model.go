package servicerequest

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

type HistoryEntry struct {
	Status    Status    `json:"status"`
	Note      string    `json:"note"`
	CreatedAt time.Time `json:"createdAt"`
}

type ServiceRequest struct {
	ID                uint           `json:"id"`
	UserID            uint           `json:"userId"`
	ServiceTypeID     uint           `json:"serviceTypeId"`
	ServiceTypeName   string         `json:"serviceTypeName"`
	EquipmentTypeID   *uint          `json:"equipmentTypeId,omitempty"`
	EquipmentTypeName string         `json:"equipmentTypeName,omitempty"`
	Description       string         `json:"description"`
	PreferredDate     time.Time      `json:"preferredDate"`
	PreferredTime     string         `json:"preferredTime"`
	ContactNumber     string         `json:"contactNumber"`
	Address           string         `json:"address"`
	Status            Status         `json:"status"`
	Technician        string         `json:"technician,omitempty"`
	ScheduledDate     *time.Time     `json:"scheduledDate,omitempty"`
	History           []HistoryEntry `json:"statusHistory,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

type CreateInput struct {
	ServiceTypeID   uint   `json:"serviceTypeId" binding:"required"`
	EquipmentTypeID *uint  `json:"equipmentTypeId"`
	Description     string `json:"description" binding:"required"`
	PreferredDate   string `json:"preferredDate" binding:"required"`
	PreferredTime   string `json:"preferredTime"`
	ContactNumber   string `json:"contactNumber" binding:"required"`
	Address         string `json:"address"`
}

type UpdateInput struct {
	Status        *Status    `json:"status"`
	Technician    *string    `json:"technician"`
	ScheduledDate *time.Time `json:"scheduledDate"`
	Note          string     `json:"note"`
}

// Change is a validated update handed to the repository. A history entry is
// appended only when WriteStatus is set.
type Change struct {
	WriteStatus   bool
	Status        Status
	Technician    *string
	ScheduledDate *time.Time
	Note          string
}

type ListFilter struct {
	UserID        *uint
	Status        Status
	ServiceTypeID *uint
	Page          int
	Limit         int
}

type ListResult struct {
	Items []ServiceRequest `json:"items"`
	Total int              `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
