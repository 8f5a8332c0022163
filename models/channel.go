// Package models contains domain entities and business models for the outreach CRM
package models

import (
	"database/sql/driver"
	"fmt"
)

// Channel represents the medium of an outreach touch
type Channel string

const (
	ChannelPhone     Channel = "phone"
	ChannelEmail     Channel = "email"
	ChannelInstagram Channel = "instagram"
	ChannelFacebook  Channel = "facebook"
	ChannelTikTok    Channel = "tiktok"
	ChannelLinkedIn  Channel = "linkedin"
	ChannelInPerson  Channel = "in_person"
	ChannelOther     Channel = "other"
)

// String returns the string representation of the channel
func (c Channel) String() string {
	return string(c)
}

// Valid checks if the channel is valid
func (c Channel) Valid() bool {
	switch c {
	case ChannelPhone, ChannelEmail, ChannelInstagram, ChannelFacebook,
		ChannelTikTok, ChannelLinkedIn, ChannelInPerson, ChannelOther:
		return true
	default:
		return false
	}
}

// Scan implements the sql.Scanner interface for Channel
func (c *Channel) Scan(value any) error {
	if value == nil {
		*c = ""
		return nil
	}

	switch v := value.(type) {
	case string:
		*c = Channel(v)
	case []byte:
		*c = Channel(string(v))
	default:
		return fmt.Errorf("cannot scan %T into Channel", value)
	}

	return nil
}

// Value implements the driver.Valuer interface for Channel
func (c Channel) Value() (driver.Value, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid Channel: %s", c)
	}
	return string(c), nil
}

// DisplayName returns a human-readable channel name
func (c Channel) DisplayName() string {
	switch c {
	case ChannelPhone:
		return "Phone"
	case ChannelEmail:
		return "Email"
	case ChannelInstagram:
		return "Instagram"
	case ChannelFacebook:
		return "Facebook"
	case ChannelTikTok:
		return "TikTok"
	case ChannelLinkedIn:
		return "LinkedIn"
	case ChannelInPerson:
		return "In Person"
	case ChannelOther:
		return "Other"
	default:
		return "Unknown"
	}
}
