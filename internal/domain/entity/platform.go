package entity

type Platform struct {
	ID   string `json:"id" firestore:"id"`
	Name string `json:"name" firestore:"name"`
	Icon string `json:"icon,omitempty" firestore:"icon,omitempty"`
}

// PlatformGroup bundles the platforms a game is sold on, e.g. "Consoles".
type PlatformGroup struct {
	ID          string   `json:"id" firestore:"id"`
	Name        string   `json:"name" firestore:"name"`
	PlatformIDs []string `json:"platform_ids" firestore:"platformIds"`
}
