package agent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/promptseerr/promptseerr/internal/media"
)

func alreadyAvailableMessage(title string) string {
	return fmt.Sprintf("🎬 %s is already here - enjoy your popcorn! 🍿", title)
}

func seasonsSatisfiedMessage(title string) string {
	return fmt.Sprintf("📺 All requested seasons of %s are ready - happy binge-watching!", title)
}

func notFoundMessage(req media.Request) string {
	kind := "movie"
	if req.MediaType == media.MediaTypeTV {
		kind = "show"
	}
	return fmt.Sprintf("🔍 I couldn't find any %s matching %q.", kind, req.Title)
}

// successMessage echoes the quality hint and, for series, the queued seasons.
// An empty season list reads as "all available seasons".
func successMessage(c media.Candidate, req media.Request, queued []int) string {
	quality := ""
	if req.Quality != "" {
		quality = " in " + strings.ToUpper(req.Quality)
	}

	if !c.IsSeries() {
		return fmt.Sprintf("🎬 Added %s to your watchlist%s. I'll notify you when it's ready to watch!", c.Title, quality)
	}

	seasons := "all available seasons"
	if len(queued) > 0 {
		parts := make([]string, len(queued))
		for i, n := range queued {
			parts[i] = strconv.Itoa(n)
		}
		seasons = "seasons " + strings.Join(parts, ", ")
	}
	return fmt.Sprintf("📺 Queued %s of %s%s. It's coming soon!", seasons, c.Title, quality)
}
