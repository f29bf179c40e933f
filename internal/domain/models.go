package domain

// EstablishmentSummary is one establishment as returned by the directory service
type EstablishmentSummary struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	City          string  `json:"city"`
	State         string  `json:"state"`
	Type          string  `json:"type"`
	PhotoPath     string  `json:"photoUrl"` // relative to the API origin, "" when absent
	AverageRating float64 `json:"averageRating"`
	TotalRatings  int     `json:"totalRatings"`
	CreatedByName string  `json:"createdByName"`
	CreatedByID   int64   `json:"createdById"`
	CreatedAt     string  `json:"createdAt"`
	UpdatedAt     string  `json:"updatedAt"`
}

// EstablishmentPage is a single page of a paginated search
type EstablishmentPage struct {
	Content       []EstablishmentSummary `json:"content"`
	TotalElements int                    `json:"totalElements"`
	TotalPages    int                    `json:"totalPages"`
	Size          int                    `json:"size"`
	Number        int                    `json:"number"`
}

// EstablishmentRequest is the payload for registering an establishment
type EstablishmentRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Type    string `json:"type"`
}

// AccessibilityFeatures are the boolean structural attributes reported per review
type AccessibilityFeatures struct {
	HasRamp                bool `json:"hasRamp"`
	HasAccessibleRestroom  bool `json:"hasAccessibleRestroom"`
	HasAccessibleParking   bool `json:"hasAccessibleParking"`
	HasElevator            bool `json:"hasElevator"`
	HasAccessibleEntrance  bool `json:"hasAccessibleEntrance"`
	HasTactileFloor        bool `json:"hasTactileFloor"`
	HasSignLanguageService bool `json:"hasSignLanguageService"`
	HasAccessibleSeating   bool `json:"hasAccessibleSeating"`
}

// ReviewRequest is the payload for submitting a review
type ReviewRequest struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
	AccessibilityFeatures
}

// Review is a review as returned by the server
type Review struct {
	ID              int64  `json:"id"`
	EstablishmentID int64  `json:"establishmentId"`
	UserID          int64  `json:"userId"`
	UserName        string `json:"userName"`
	Rating          int    `json:"rating"`
	Comment         string `json:"comment"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
	AccessibilityFeatures
}

// UserProfile is the authenticated user
type UserProfile struct {
	ID    int64    `json:"id"`
	Name  string   `json:"name"`
	Email string   `json:"email"`
	Roles []string `json:"roles"`
}
