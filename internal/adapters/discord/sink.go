// Package discord renders lobby views into Discord channels. All Discord
// specifics (embed layout, markdown profile links, message purging, the
// channel-name player counter) live here and nowhere else.
package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"

	"lobbywatch/internal/core"
	"lobbywatch/internal/domain"
)

const (
	embedColor = 0x2ecc71
	footerText = "Thank you for playing MGO1!"
	purgeLimit = 100

	// Embed fields reject empty values; a zero-width space keeps the
	// layout when a lobby somehow has no roster to show.
	blankField = "​"
)

// mapImages maps a title-cased map name to its promo shot.
var mapImages = map[string]string{
	"Brown Town":         "https://i.imgur.com/zqBPi4L.jpg",
	"City Under Siege":   "https://i.imgur.com/FWs7yBe.jpg",
	"Ghost Factory":      "https://i.imgur.com/SfTmUIx.jpg",
	"Graniny Gorki Lab":  "https://i.imgur.com/9Nx7X9r.jpg",
	"High Ice":           "https://i.imgur.com/hdexoaN.jpg",
	"Killhouse A":        "https://i.imgur.com/Cid2W0h.jpg",
	"Killhouse B":        "https://i.imgur.com/kHKD9ns.jpg",
	"Killhouse C":        "https://i.imgur.com/JHsX0i1.jpg",
	"Lost Forest":        "https://i.imgur.com/nCLVMff.jpg",
	"Mountaintop":        "https://i.imgur.com/dCQuBaR.jpg",
	"Pillbox Purgatory":  "https://i.imgur.com/bBJNsOc.jpg",
	"Svyatogornyj East":  "https://i.imgur.com/DOsu6dy.jpg",
}

type Sink struct {
	session  *discordgo.Session
	surfaces []core.SurfaceID
	siteURL  string
}

// New builds a sink over an opened discordgo session. channels are the
// channel ids to mirror into; siteURL is the public site base used for
// lobby and profile links.
func New(session *discordgo.Session, channels []string, siteURL string) *Sink {
	s := &Sink{
		session: session,
		siteURL: strings.TrimSuffix(siteURL, "/"),
	}
	for _, ch := range channels {
		s.surfaces = append(s.surfaces, core.SurfaceID(ch))
	}
	return s
}

func (s *Sink) Surfaces() []core.SurfaceID { return s.surfaces }

// ClearSurface purges the channel's recent messages. Bulk delete refuses
// messages older than two weeks, so it falls back to deleting one by one.
func (s *Sink) ClearSurface(ctx context.Context, id core.SurfaceID) error {
	msgs, err := s.session.ChannelMessages(string(id), purgeLimit, "", "", "", discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("list messages: %w", err)
	}
	if len(msgs) == 0 {
		return nil
	}
	ids := make([]string, len(msgs))
	for i, m := range msgs {
		ids[i] = m.ID
	}
	if err := s.session.ChannelMessagesBulkDelete(string(id), ids, discordgo.WithContext(ctx)); err == nil {
		return nil
	}
	log.Debug().Str("module", "discord").Str("channel", string(id)).
		Msg("bulk delete refused, deleting individually")
	for _, mid := range ids {
		if err := s.session.ChannelMessageDelete(string(id), mid, discordgo.WithContext(ctx)); err != nil {
			return fmt.Errorf("delete message %s: %w", mid, err)
		}
	}
	return nil
}

func (s *Sink) Render(ctx context.Context, id core.SurfaceID, view core.RenderedView) error {
	embed := &discordgo.MessageEmbed{
		Title:       view.Title,
		Description: view.Description,
		URL:         fmt.Sprintf("%s/games/%s", s.siteURL, view.GameID),
		Color:       embedColor,
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Map", Value: orBlank(view.Map), Inline: true},
			{Name: "Mode", Value: orBlank(view.Mode), Inline: true},
			{Name: blankField, Value: blankField, Inline: true},
			{
				Name:   fmt.Sprintf("Players %d/%d", len(view.Players), view.MaxPlayers),
				Value:  s.roster(view.Players),
				Inline: true,
			},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: footerText},
	}
	if img, ok := mapImages[view.Map]; ok {
		embed.Image = &discordgo.MessageEmbedImage{URL: img}
	}
	_, err := s.session.ChannelMessageSendEmbed(string(id), embed, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("send embed: %w", err)
	}
	return nil
}

// roster renders one profile link per player, in join order. Sentinel
// labels still link to the profile so moderators can follow up on them.
func (s *Sink) roster(players []domain.PlayerRef) string {
	if len(players) == 0 {
		return blankField
	}
	var b strings.Builder
	for _, p := range players {
		fmt.Fprintf(&b, "[%s](%s/users/%s)\n", p.Label, s.siteURL, p.UserID)
	}
	return b.String()
}

func (s *Sink) SetPlayerCount(ctx context.Context, id core.SurfaceID, n int) error {
	name := fmt.Sprintf("🌐mgo1-lobbies【%d】", n)
	_, err := s.session.ChannelEdit(string(id), &discordgo.ChannelEdit{Name: name}, discordgo.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("edit channel name: %w", err)
	}
	return nil
}

func (s *Sink) Announce(ctx context.Context, id core.SurfaceID, text string) error {
	if _, err := s.session.ChannelMessageSend(string(id), text, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

func orBlank(s string) string {
	if s == "" {
		return blankField
	}
	return s
}
