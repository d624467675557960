package service

import "fmt"

// User-facing planning messages. The product ships in French.
const recommendationOptimal = "Capacité optimale - possibilité de lancer de nouveaux groupes"

func overloadedTrainersMessage(n int) string {
	return fmt.Sprintf("%d formateur(s) en surcharge - redistribuer les modules", n)
}

func overbookedRoomsMessage(n int) string {
	return fmt.Sprintf("%d salle(s) surbookée(s) - revoir la planification", n)
}

func groupsWithoutModulesMessage(n int) string {
	return fmt.Sprintf("%d groupe(s) sans modules assignés", n)
}

func groupsWithoutRoomMessage(n int) string {
	return fmt.Sprintf("%d groupe(s) sans salle assignée", n)
}

func recalculatedMessage(n int) string {
	return fmt.Sprintf("%d groupes recalculés", n)
}

func autoAssignMessage(n int) string {
	return fmt.Sprintf("%d affectations créées automatiquement", n)
}

func trainerConflictMessage(planned, available float64) string {
	return fmt.Sprintf("Surcharge formateurs : %sh planifiées pour %sh disponibles", formatHours(planned), formatHours(available))
}

func roomConflictMessage(planned, available float64) string {
	return fmt.Sprintf("Surcharge salles : %sh planifiées pour %sh disponibles", formatHours(planned), formatHours(available))
}
