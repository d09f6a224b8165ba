package notify

import (
	"github.com/llehouerou/ambience/internal/config"
	"github.com/llehouerou/ambience/internal/logger"
	"github.com/llehouerou/ambience/internal/playback"
)

// LanguageSource reports the language of the configured session.
type LanguageSource interface {
	LanguageCode() string
}

type messages struct {
	finished, playlistDone, unplayable, unplayableBody string
}

var catalog = map[string]messages{
	"en": {
		finished:       "Session finished",
		playlistDone:   "Playlist finished",
		unplayable:     "Playback stopped",
		unplayableBody: "No track of the playlist could be played",
	},
	"fr": {
		finished:       "Séance terminée",
		playlistDone:   "Liste de lecture terminée",
		unplayable:     "Lecture arrêtée",
		unplayableBody: "Aucune piste de la liste n'a pu être lue",
	},
	"es": {
		finished:       "Sesión terminada",
		playlistDone:   "Lista de reproducción terminada",
		unplayable:     "Reproducción detenida",
		unplayableBody: "No se pudo reproducir ninguna pista de la lista",
	},
	"ca": {
		finished:       "Sessió acabada",
		playlistDone:   "Llista de reproducció acabada",
		unplayable:     "Reproducció aturada",
		unplayableBody: "No s'ha pogut reproduir cap pista de la llista",
	},
}

// ForStop returns the notification for a session that ended for reason, or
// false when the stop does not warrant one.
func ForStop(reason playback.StopReason, lang string) (Notification, bool) {
	msg := catalog[config.NormalizeLanguage(lang)]
	n := Notification{Timeout: defaultTimeout, Icon: "media-playback-stop"}

	switch reason {
	case playback.StopSessionLength:
		n.Title = msg.finished
	case playback.StopEndOfPlaylist:
		n.Title = msg.playlistDone
	case playback.StopUnplayable:
		n.Title = msg.unplayable
		n.Body = msg.unplayableBody
		n.Urgency = UrgencyCritical
		n.Icon = "dialog-error"
	default:
		return Notification{}, false
	}
	return n, true
}

// Watch sends a notification whenever a session ends on its own and
// dismisses it once a new session starts. It returns when sub is closed.
func Watch(sub *playback.Subscription, n Notifier, src LanguageSource) {
	log := logger.Component("notify")
	var shown uint32

	for {
		select {
		case <-sub.Done:
			return
		case e := <-sub.StateChanged:
			switch e.Current {
			case playback.StatePlaying:
				if shown == 0 {
					continue
				}
				if err := n.Dismiss(shown); err != nil {
					log.Debug().Err(err).Uint32("id", shown).Msg("dismiss notification")
				}
				shown = 0
			case playback.StateStopped:
				notif, ok := ForStop(e.Reason, src.LanguageCode())
				if !ok {
					continue
				}
				notif.ReplacesID = shown
				id, err := n.Notify(notif)
				if err != nil {
					log.Debug().Err(err).Msg("send notification")
					continue
				}
				shown = id
			}
		}
	}
}
