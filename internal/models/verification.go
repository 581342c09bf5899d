package models

import (
	"time"

	"gorm.io/gorm"
)

// Verification is the stored outcome of a successful link, keyed by Discord user id.
type Verification struct {
	gorm.Model
	DiscordID       string    `gorm:"uniqueIndex"`
	DiscordUsername string
	GitHubUsername  string
	AccessToken     string    `json:"-"`
	RefreshToken    string    `json:"-"`
	TokenExpiry     time.Time `json:"-"`
	LastChecked     time.Time
	Repositories    []string `gorm:"serializer:json"`
}

// PlatformUsername is the name shown on the Discord role connection.
func (v Verification) PlatformUsername() string {
	if v.GitHubUsername != "" {
		return v.GitHubUsername
	}
	return v.DiscordUsername
}
