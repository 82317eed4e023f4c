package ports

import (
	"github.com/campusnav/core/internal/domain/entities"
)

// FormFields is a submitted entity form. Pointer fields distinguish an unset
// value from a zero one so that "required" means "present".
type FormFields[T any] interface {
	Entity() T
}

// ListFilter narrows a list operation
type ListFilter struct {
	Query string
	Flags map[string]bool
}

// HasFlags reports whether any boolean flag filter is set
func (f ListFilter) HasFlags() bool { return len(f.Flags) > 0 }

// Location form
type LocationForm struct {
	Name       string `json:"name" validate:"required"`
	Building   string `json:"building" validate:"required"`
	Floor      *int   `json:"floor" validate:"required"`
	Accessible *bool  `json:"accessible" validate:"required"`
}

func (f LocationForm) Entity() entities.Location {
	l := entities.Location{Name: f.Name, Building: f.Building}
	if f.Floor != nil {
		l.Floor = *f.Floor
	}
	if f.Accessible != nil {
		l.Accessible = *f.Accessible
	}
	return l
}

// NewLocationForm pre-fills a form from a stored location
func NewLocationForm(l entities.Location) LocationForm {
	return LocationForm{Name: l.Name, Building: l.Building, Floor: &l.Floor, Accessible: &l.Accessible}
}

// Route form
type RouteForm struct {
	StartLocation string   `json:"start_location" validate:"required"`
	EndLocation   string   `json:"end_location" validate:"required"`
	DistanceM     *float64 `json:"distance_m" validate:"required,finite,gte=0"`
	Accessible    *bool    `json:"accessible" validate:"required"`
}

func (f RouteForm) Entity() entities.Route {
	r := entities.Route{StartLocation: f.StartLocation, EndLocation: f.EndLocation}
	if f.DistanceM != nil {
		r.DistanceM = *f.DistanceM
	}
	if f.Accessible != nil {
		r.Accessible = *f.Accessible
	}
	return r
}

// NewRouteForm pre-fills a form from a stored route
func NewRouteForm(r entities.Route) RouteForm {
	return RouteForm{StartLocation: r.StartLocation, EndLocation: r.EndLocation, DistanceM: &r.DistanceM, Accessible: &r.Accessible}
}

// User form. Password is only required when creating; leaving it empty on
// an edit keeps the stored hash.
type UserForm struct {
	Username string            `json:"username" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Role     entities.UserRole `json:"role" validate:"required,oneof=student staff admin visitor"`
	Password string            `json:"password"`
}

func (f UserForm) Entity() entities.User {
	return entities.User{Username: f.Username, Email: f.Email, Role: f.Role, Password: f.Password}
}

// NewUserForm pre-fills a form from a stored user. The password is never
// echoed back.
func NewUserForm(u entities.User) UserForm {
	return UserForm{Username: u.Username, Email: u.Email, Role: u.Role}
}

// Notification form
type NotificationForm struct {
	UserID    *int   `json:"user_id" validate:"required,gte=0"`
	Message   string `json:"message" validate:"required"`
	Delivered *bool  `json:"delivered" validate:"required"`
}

func (f NotificationForm) Entity() entities.Notification {
	n := entities.Notification{Message: f.Message}
	if f.UserID != nil {
		n.UserID = *f.UserID
	}
	if f.Delivered != nil {
		n.Delivered = *f.Delivered
	}
	return n
}

// NewNotificationForm pre-fills a form from a stored notification
func NewNotificationForm(n entities.Notification) NotificationForm {
	return NotificationForm{UserID: &n.UserID, Message: n.Message, Delivered: &n.Delivered}
}

// Route finder types
type RouteQuery struct {
	Start          string `query:"start" json:"start"`
	End            string `query:"end" json:"end"`
	AccessibleOnly bool   `query:"accessible_only" json:"accessible_only"`
}

type RouteResult struct {
	All  []entities.Route `json:"all"`
	Best *entities.Route  `json:"best"`
}

// Auth related types
type SignupRequest struct {
	Username string            `json:"username" validate:"required"`
	Email    string            `json:"email" validate:"required,email"`
	Password string            `json:"password" validate:"required"`
	Role     entities.UserRole `json:"role" validate:"omitempty,oneof=student staff visitor"`
	Consent  bool              `json:"consent"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type AuthResponse struct {
	AccessToken string         `json:"access_token"`
	TokenType   string         `json:"token_type"`
	ExpiresIn   int64          `json:"expires_in"`
	User        *entities.User `json:"user"`
}

type Claims struct {
	UserID   int               `json:"user_id"`
	Username string            `json:"username"`
	Role     entities.UserRole `json:"role"`
}

// Analytics types
type CountEntry struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type HistogramBin struct {
	From  float64 `json:"from"`
	To    float64 `json:"to"`
	Count int     `json:"count"`
}

type RouteUsageMatrix struct {
	Locations []string `json:"locations"`
	Counts    [][]int  `json:"counts"`
}

type AnalyticsReport struct {
	TotalLocations      int              `json:"total_locations"`
	AccessibleLocations int              `json:"accessible_locations"`
	TotalRoutes         int              `json:"total_routes"`
	AccessibleRoutes    int              `json:"accessible_routes"`
	LocationsByBuilding []CountEntry     `json:"locations_by_building"`
	LocationsByFloor    []CountEntry     `json:"locations_by_floor"`
	RouteUsage          RouteUsageMatrix `json:"route_usage"`
	Distances           []float64        `json:"distances"`
	DistanceHistogram   []HistogramBin   `json:"distance_histogram"`
}
