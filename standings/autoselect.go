package standings

import (
	"strconv"
	"strings"

	"github.com/Daniyar05/esports-tournament-system/models"
)

// PickDefaultTournament выбирает турнир, который стоит показать по умолчанию,
// когда явного выбора ещё нет. Турниры с хотя бы одной командой
// предпочтительнее пустых; среди подходящих берётся самый свежий.
//
// teamCounts может быть nil (например, подсчёт команд упал) — тогда выбор
// идёт чисто по свежести среди всех турниров. Возвращает (id, true) либо
// ("", false) для пустого входа.
func PickDefaultTournament(tournaments []models.Tournament, teamCounts map[string]int) (string, bool) {
	if len(tournaments) == 0 {
		return "", false
	}

	candidates := tournaments
	if teamCounts != nil {
		withTeams := make([]models.Tournament, 0, len(tournaments))
		for _, t := range tournaments {
			if teamCounts[t.ID] > 0 {
				withTeams = append(withTeams, t)
			}
		}
		if len(withTeams) > 0 {
			candidates = withTeams
		}
	}

	best := candidates[0]
	for _, t := range candidates[1:] {
		// Строго "новее": при равенстве признаков свежести сохраняется
		// порядок входа.
		if isNewer(t, best) {
			best = t
		}
	}
	return best.ID, true
}

func isNewer(a, b models.Tournament) bool {
	if !a.CreatedAt.IsZero() && !b.CreatedAt.IsZero() {
		return a.CreatedAt.After(b.CreatedAt)
	}
	if !a.CreatedAt.IsZero() || !b.CreatedAt.IsZero() {
		// Известная дата создания надёжнее любой эвристики по id.
		return !a.CreatedAt.IsZero()
	}
	tsA, okA := idTimestamp(a.ID)
	tsB, okB := idTimestamp(b.ID)
	if okA && okB {
		return tsA > tsB
	}
	if okA != okB {
		return okA
	}
	return false
}

// idTimestamp вытаскивает числовой суффикс из id вида "t_1700000000000".
// Кривые id не ошибка — кандидат просто проигрывает сравнение по свежести.
func idTimestamp(id string) (int64, bool) {
	idx := strings.LastIndexByte(id, '_')
	if idx < 0 || idx == len(id)-1 {
		return 0, false
	}
	ts, err := strconv.ParseInt(id[idx+1:], 10, 64)
	if err != nil {
		return 0, false
	}
	return ts, true
}
