package notifier

import (
	"fmt"
	"log"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/contrib-role-api/internal/models"
)

type Notifier interface {
	NotifyVerified(v models.Verification, result models.ContributionResult) error
}

type DiscordNotifier struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordNotifier(session *discordgo.Session, channelID string) *DiscordNotifier {
	return &DiscordNotifier{
		session:   session,
		channelID: channelID,
	}
}

func (n *DiscordNotifier) NotifyVerified(v models.Verification, result models.ContributionResult) error {
	if n.session == nil {
		return fmt.Errorf("discord session is nil")
	}
	if n.channelID == "" {
		return fmt.Errorf("discord channel ID is empty")
	}
	if !result.Contributed || result.Repo == nil {
		return nil
	}

	message := fmt.Sprintf("✅ **Contributor Verified**\n**User:** <@%s>\n**GitHub:** [%s](https://github.com/%s)\n**Repository:** %s",
		v.DiscordID,
		v.GitHubUsername,
		v.GitHubUsername,
		result.Repo.String(),
	)

	_, err := n.session.ChannelMessageSend(n.channelID, message)
	if err != nil {
		log.Printf("Failed to send discord message: %v", err)
		return err
	}

	return nil
}
