package entities

import (
	"strconv"
	"strings"
)

// Enums and types
type UserRole string

const (
	UserRoleStudent UserRole = "student"
	UserRoleStaff   UserRole = "staff"
	UserRoleAdmin   UserRole = "admin"
	UserRoleVisitor UserRole = "visitor"
)

// Roles lists every role a user may hold, in display order
var Roles = []UserRole{UserRoleStudent, UserRoleStaff, UserRoleAdmin, UserRoleVisitor}

// ParseRole reads a stored role in any letter case. Unrecognised roles
// map to visitor.
func ParseRole(s string) UserRole {
	role := UserRole(strings.ToLower(strings.TrimSpace(s)))
	for _, r := range Roles {
		if role == r {
			return r
		}
	}
	return UserRoleVisitor
}

// Record is implemented by every entity kept in a record store. T is the
// entity's own value type so that WithRecordID can return a typed copy.
type Record[T any] interface {
	RecordID() int
	WithRecordID(id int) T
	Validate() error
	SearchText() string
	Flag(name string) (value bool, ok bool)
}

// Location represents a named place on campus
type Location struct {
	ID         int    `json:"id" csv:"id" validate:"gte=0"`
	Name       string `json:"name" csv:"name" validate:"required"`
	Building   string `json:"building" csv:"building" validate:"required"`
	Floor      int    `json:"floor" csv:"floor"`
	Accessible bool   `json:"accessible" csv:"accessible"`
}

// Route is a directed walking connection between two locations, referenced
// by name. Names are not checked against the location store.
type Route struct {
	ID            int     `json:"id" csv:"id" validate:"gte=0"`
	StartLocation string  `json:"start_location" csv:"start_location" validate:"required"`
	EndLocation   string  `json:"end_location" csv:"end_location" validate:"required"`
	DistanceM     float64 `json:"distance_m" csv:"distance_m" validate:"finite,gte=0"`
	Accessible    bool    `json:"accessible" csv:"accessible"`
}

// User represents a dashboard account. Password carries a plaintext
// password from a form on its way to being hashed and is never persisted.
type User struct {
	ID           int      `json:"id" csv:"id" validate:"gte=0"`
	Username     string   `json:"username" csv:"username" validate:"required"`
	Email        string   `json:"email" csv:"email" validate:"required,email"`
	Role         UserRole `json:"role" csv:"role" validate:"required,oneof=student staff admin visitor"`
	PasswordHash string   `json:"-" csv:"password" validate:"required"`
	Password     string   `json:"password,omitempty" csv:"-" validate:"-"`
}

// storedUser holds the rules a user row read from disk must meet. Emails
// are kept as written.
type storedUser struct {
	ID           int      `csv:"id" validate:"gte=0"`
	Username     string   `csv:"username" validate:"required"`
	Role         UserRole `csv:"role" validate:"required,oneof=student staff admin visitor"`
	PasswordHash string   `csv:"password" validate:"required"`
}

// Notification is a message addressed to a user id
type Notification struct {
	ID        int    `json:"id" csv:"id" validate:"gte=0"`
	UserID    int    `json:"user_id" csv:"user_id" validate:"gte=0"`
	Message   string `json:"message" csv:"message" validate:"required"`
	Delivered bool   `json:"delivered" csv:"delivered"`
}

func (l Location) RecordID() int { return l.ID }

func (l Location) WithRecordID(id int) Location {
	l.ID = id
	return l
}

func (l Location) Validate() error { return ValidateStruct(l) }

func (l Location) SearchText() string {
	return joinFields(strconv.Itoa(l.ID), l.Name, l.Building, strconv.Itoa(l.Floor), FormatBool(l.Accessible))
}

func (l Location) Flag(name string) (bool, bool) {
	if name == "accessible" {
		return l.Accessible, true
	}
	return false, false
}

func (r Route) RecordID() int { return r.ID }

func (r Route) WithRecordID(id int) Route {
	r.ID = id
	return r
}

func (r Route) Validate() error { return ValidateStruct(r) }

func (r Route) SearchText() string {
	return joinFields(strconv.Itoa(r.ID), r.StartLocation, r.EndLocation, FormatFloat(r.DistanceM), FormatBool(r.Accessible))
}

func (r Route) Flag(name string) (bool, bool) {
	if name == "accessible" {
		return r.Accessible, true
	}
	return false, false
}

// Label renders the route the way notifications refer to it
func (r Route) Label() string {
	return r.StartLocation + " → " + r.EndLocation
}

func (u User) RecordID() int { return u.ID }

func (u User) WithRecordID(id int) User {
	u.ID = id
	return u
}

func (u User) Validate() error { return ValidateStruct(u) }

// ValidateStored checks a user loaded from the users file
func (u User) ValidateStored() error {
	return ValidateStruct(storedUser{ID: u.ID, Username: u.Username, Role: u.Role, PasswordHash: u.PasswordHash})
}

// SearchText never includes the password hash.
func (u User) SearchText() string {
	return joinFields(strconv.Itoa(u.ID), u.Username, u.Email, string(u.Role))
}

// Users carry no boolean fields.
func (u User) Flag(string) (bool, bool) { return false, false }

// IsAdmin reports whether the user may manage accounts and notifications
func (u User) IsAdmin() bool { return u.Role == UserRoleAdmin }

func (n Notification) RecordID() int { return n.ID }

func (n Notification) WithRecordID(id int) Notification {
	n.ID = id
	return n
}

func (n Notification) Validate() error { return ValidateStruct(n) }

func (n Notification) SearchText() string {
	return joinFields(strconv.Itoa(n.ID), strconv.Itoa(n.UserID), n.Message, FormatBool(n.Delivered))
}

func (n Notification) Flag(name string) (bool, bool) {
	if name == "delivered" {
		return n.Delivered, true
	}
	return false, false
}

// NextID returns max(existing ids, default 0) + 1
func NextID[T Record[T]](records []T) int {
	highest := 0
	for _, r := range records {
		if id := r.RecordID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// IndexOf returns the position of the record with the given id, or -1
func IndexOf[T Record[T]](records []T, id int) int {
	for i, r := range records {
		if r.RecordID() == id {
			return i
		}
	}
	return -1
}

// FormatBool renders a boolean in the persisted "True"/"False" form
func FormatBool(b bool) string {
	if b {
		return "True"
	}
	return "False"
}

// ParseBool is true for "true" in any letter case and false otherwise
func ParseBool(s string) bool {
	return strings.EqualFold(s, "true")
}

// FormatFloat renders a float with at least one decimal place ("50.0")
func FormatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

func joinFields(fields ...string) string {
	return strings.Join(fields, " ")
}
