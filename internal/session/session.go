package session

import "time"

type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
	RoleWorker   Role = "worker"
	RoleDriver   Role = "driver"
)

// Grant records that the session is signed in as Subject under Role.
type Grant struct {
	Role      Role      `json:"role"`
	Subject   string    `json:"subject"`
	Name      string    `json:"name"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (g Grant) Expired(now time.Time) bool {
	return !now.Before(g.ExpiresAt)
}

// Flash categories, matching the alert styles in the layout.
const (
	FlashSuccess = "success"
	FlashError   = "error"
	FlashInfo    = "info"
	FlashWarning = "warning"
)

type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// Data is everything a browser session carries between requests.
type Data struct {
	ID      string         `json:"id"`
	Grants  map[Role]Grant `json:"grants,omitempty"`
	Cart    Cart           `json:"cart"`
	Flashes []Flash        `json:"flashes,omitempty"`

	renewed bool
}

// Grant returns the live grant for role. An expired grant is dropped.
func (d *Data) Grant(role Role, now time.Time) (Grant, bool) {
	g, ok := d.Grants[role]
	if !ok {
		return Grant{}, false
	}
	if g.Expired(now) {
		delete(d.Grants, role)
		return Grant{}, false
	}
	return g, true
}

// SignIn issues a grant for role lasting ttl and renews the session id.
func (d *Data) SignIn(role Role, subject, name string, now time.Time, ttl time.Duration) Grant {
	if d.Grants == nil {
		d.Grants = make(map[Role]Grant)
	}
	g := Grant{
		Role:      role,
		Subject:   subject,
		Name:      name,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}
	d.Grants[role] = g
	d.renewed = true
	return g
}

func (d *Data) Revoke(role Role) {
	delete(d.Grants, role)
}

// PruneExpired removes every grant that has lapsed.
func (d *Data) PruneExpired(now time.Time) {
	for role, g := range d.Grants {
		if g.Expired(now) {
			delete(d.Grants, role)
		}
	}
}

// Clear drops grants, cart and pending flashes.
func (d *Data) Clear() {
	d.Grants = nil
	d.Cart.Clear()
	d.Flashes = nil
	d.renewed = true
}

func (d *Data) AddFlash(category, message string) {
	d.Flashes = append(d.Flashes, Flash{Category: category, Message: message})
}

// TakeFlashes returns the queued flashes and empties the queue.
func (d *Data) TakeFlashes() []Flash {
	flashes := d.Flashes
	d.Flashes = nil
	return flashes
}
