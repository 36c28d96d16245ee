package espn

// Raw shapes for the ESPN scoreboard response. Only the fields the gate and
// the Ice tracker consume are declared; everything else is ignored on decode.

type scoreboardResponse struct {
	Events []rawEvent `json:"events"`
}

type rawEvent struct {
	ID           string           `json:"id"`
	Date         string           `json:"date"`
	Name         string           `json:"name"`
	ShortName    string           `json:"shortName"`
	Competitions []rawCompetition `json:"competitions"`
	Status       rawStatus        `json:"status"`
}

type rawCompetition struct {
	Competitors []rawCompetitor `json:"competitors"`
}

type rawCompetitor struct {
	HomeAway string  `json:"homeAway"`
	Team     rawTeam `json:"team"`
}

type rawTeam struct {
	Abbreviation string `json:"abbreviation"`
	DisplayName  string `json:"displayName"`
}

type rawStatus struct {
	Type rawStatusType `json:"type"`
}

type rawStatusType struct {
	State       string `json:"state"`
	Completed   bool   `json:"completed"`
	Description string `json:"description"`
	ShortDetail string `json:"shortDetail"`
}
