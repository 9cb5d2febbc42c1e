package model

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Client is a buying party in a sale
type Client struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"nombre"`
	Race     string `json:"raza"`
	Location string `json:"ubicacion"`
}

func (c Client) GetID() string { return c.ID }

// Merchant is a supplying party in a purchase
type Merchant struct {
	ID       string `json:"id" validate:"required"`
	Name     string `json:"nombre"`
	Type     string `json:"tipo"`
	Location string `json:"ubicacion"`
}

func (m Merchant) GetID() string { return m.ID }

// ClientUpdate carries the client fields to change. Nil fields are left untouched.
type ClientUpdate struct {
	Name     *string
	Race     *string
	Location *string
}

func (u ClientUpdate) Apply(c *Client) {
	if u.Name != nil {
		c.Name = *u.Name
	}
	if u.Race != nil {
		c.Race = *u.Race
	}
	if u.Location != nil {
		c.Location = *u.Location
	}
}

// MerchantUpdate carries the merchant fields to change. Nil fields are left untouched.
type MerchantUpdate struct {
	Name     *string
	Type     *string
	Location *string
}

func (u MerchantUpdate) Apply(m *Merchant) {
	if u.Name != nil {
		m.Name = *u.Name
	}
	if u.Type != nil {
		m.Type = *u.Type
	}
	if u.Location != nil {
		m.Location = *u.Location
	}
}

type PartyKind string

const (
	PartyClient   PartyKind = "cliente"
	PartyMerchant PartyKind = "mercader"
)

// Party is the party involved in a transaction: exactly one of Client or Merchant,
// selected by Kind.
type Party struct {
	Kind     PartyKind
	Client   *Client
	Merchant *Merchant
}

var ErrUnknownParty = errors.New("unknown involved party")

func ClientParty(c Client) Party {
	return Party{Kind: PartyClient, Client: &c}
}

func MerchantParty(m Merchant) Party {
	return Party{Kind: PartyMerchant, Merchant: &m}
}

// ID returns the identifier of whichever variant is set
func (p Party) ID() string {
	switch p.Kind {
	case PartyClient:
		if p.Client != nil {
			return p.Client.ID
		}
	case PartyMerchant:
		if p.Merchant != nil {
			return p.Merchant.ID
		}
	}
	return ""
}

func (p Party) Name() string {
	switch p.Kind {
	case PartyClient:
		if p.Client != nil {
			return p.Client.Name
		}
	case PartyMerchant:
		if p.Merchant != nil {
			return p.Merchant.Name
		}
	}
	return ""
}

// partyJSON is the flat on-disk shape of both variants plus the "rol" discriminant
type partyJSON struct {
	Role     PartyKind `json:"rol"`
	ID       string    `json:"id"`
	Name     string    `json:"nombre"`
	Race     *string   `json:"raza,omitempty"`
	Type     *string   `json:"tipo,omitempty"`
	Location string    `json:"ubicacion"`
}

func (p Party) MarshalJSON() ([]byte, error) {
	switch {
	case p.Kind == PartyClient && p.Client != nil:
		c := p.Client
		return json.Marshal(partyJSON{Role: PartyClient, ID: c.ID, Name: c.Name, Race: &c.Race, Location: c.Location})
	case p.Kind == PartyMerchant && p.Merchant != nil:
		m := p.Merchant
		return json.Marshal(partyJSON{Role: PartyMerchant, ID: m.ID, Name: m.Name, Type: &m.Type, Location: m.Location})
	}
	return nil, fmt.Errorf("%w: kind %q", ErrUnknownParty, p.Kind)
}

// UnmarshalJSON also accepts records written without "rol", telling the variants
// apart by their "raza"/"tipo" field.
func (p *Party) UnmarshalJSON(data []byte) error {
	var raw partyJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	kind := raw.Role
	if kind == "" {
		switch {
		case raw.Race != nil:
			kind = PartyClient
		case raw.Type != nil:
			kind = PartyMerchant
		}
	}

	switch kind {
	case PartyClient:
		c := Client{ID: raw.ID, Name: raw.Name, Location: raw.Location}
		if raw.Race != nil {
			c.Race = *raw.Race
		}
		*p = ClientParty(c)
	case PartyMerchant:
		m := Merchant{ID: raw.ID, Name: raw.Name, Location: raw.Location}
		if raw.Type != nil {
			m.Type = *raw.Type
		}
		*p = MerchantParty(m)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownParty, string(data))
	}
	return nil
}
