package buyer

import (
	"errors"
	"sync"
)

// ErrIncompleteInfo is returned when the information form is submitted with
// one or more required fields left blank.
var ErrIncompleteInfo = errors.New("incomplete buyer information")

// Buyer carries the contact and shipping details collected on the
// information step. The core only requires presence; format checks belong
// to the form layer.
type Buyer struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Address    string `json:"address"`
	Locality   string `json:"locality"`
	Country    string `json:"country"`
	Region     string `json:"region"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

func (b Buyer) missingField() bool {
	return b.Name == "" || b.Email == "" || b.Address == "" || b.Locality == "" ||
		b.Country == "" || b.Region == "" || b.PostalCode == "" || b.Phone == ""
}

// Record holds the committed buyer for one session. Set replaces the whole
// record or nothing; a partially filled buyer is never observable.
type Record struct {
	mu    sync.RWMutex
	buyer Buyer
	set   bool
}

func NewRecord() *Record {
	return &Record{}
}

// Set commits b if every required field is present. On ErrIncompleteInfo
// the previously committed buyer, if any, is left untouched.
func (r *Record) Set(b Buyer) error {
	if b.missingField() {
		return ErrIncompleteInfo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buyer = b
	r.set = true
	return nil
}

// Get returns the committed buyer. ok is false until a complete record has
// been submitted.
func (r *Record) Get() (Buyer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.buyer, r.set
}
