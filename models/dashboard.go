package models

type DashboardStats struct {
	PlayersTotal       int `json:"playersTotal"`
	ActivePlayers      int `json:"activePlayers"`
	TournamentsTotal   int `json:"tournamentsTotal"`
	RosterEntriesTotal int `json:"rosterEntriesTotal"`
}
