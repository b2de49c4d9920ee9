package console

import (
	"strconv"
	"strings"
	"time"

	"carrental-backend/collection"
	"carrental-backend/models"
)

// ClientView describes the client list screen: searchable over full name,
// email, phone and city; filterable by city, licence category and
// registration date range.
func ClientView() collection.Config[models.Client] {
	fullName := func(cl models.Client) string { return cl.Prenom + " " + cl.Nom }
	ville := func(cl models.Client) string { return cl.Adresse.Ville }

	return collection.Config[models.Client]{
		PageSize: DefaultPageSize,
		SearchFields: []func(models.Client) string{
			fullName,
			func(cl models.Client) string { return cl.Email },
			func(cl models.Client) string { return cl.Telephone },
			ville,
		},
		SortFields: map[string]func(a, b models.Client) int{
			"nom":        collection.CompareStrings(func(cl models.Client) string { return cl.Nom }),
			"ville":      collection.CompareStrings(ville),
			"date_ajout": collection.CompareTimes(func(cl models.Client) time.Time { return cl.DateAjout }),
		},
		Filters: []collection.FilterSpec[models.Client]{
			{
				Name:    "ville",
				Build:   func(v string) collection.Filter[models.Client] { return collection.Text(v, ville) },
				Options: ville,
			},
			{
				Name: "permis",
				Build: func(v string) collection.Filter[models.Client] {
					return collection.Equals(v, func(cl models.Client) string { return cl.PermisConduire })
				},
				Options: func(cl models.Client) string { return cl.PermisConduire },
			},
			collection.DateRangeSpec("date_ajout", func(cl models.Client) string {
				return cl.DateAjout.Format("2006-01-02T15:04:05")
			}),
		},
	}
}

// VoitureView: searchable over make/model/plate; filterable by status, fuel
// type, colour and option tags; sortable by daily price, year and mileage.
func VoitureView() collection.Config[models.Voiture] {
	return collection.Config[models.Voiture]{
		PageSize: DefaultPageSize,
		SearchFields: []func(models.Voiture) string{
			func(v models.Voiture) string { return v.Marque + " " + v.Modele },
			func(v models.Voiture) string { return v.Immatriculation },
		},
		SortFields: map[string]func(a, b models.Voiture) int{
			"prix_journalier": collection.CompareFloats(func(v models.Voiture) float64 { return v.PrixJournalier }),
			"annee":           collection.CompareFloats(func(v models.Voiture) float64 { return float64(v.Annee) }),
			"kilometrage":     collection.CompareFloats(func(v models.Voiture) float64 { return float64(v.Kilometrage) }),
			"marque":          collection.CompareStrings(func(v models.Voiture) string { return v.Marque }),
		},
		Filters: []collection.FilterSpec[models.Voiture]{
			{
				Name: "status",
				Build: func(val string) collection.Filter[models.Voiture] {
					return collection.Equals(val, func(v models.Voiture) string { return string(v.Status) })
				},
				Options: func(v models.Voiture) string { return string(v.Status) },
			},
			{
				Name: "carburant",
				Build: func(val string) collection.Filter[models.Voiture] {
					return collection.Equals(val, func(v models.Voiture) string { return string(v.TypeCarburant) })
				},
				Options: func(v models.Voiture) string { return string(v.TypeCarburant) },
			},
			{
				Name: "couleur",
				Build: func(val string) collection.Filter[models.Voiture] {
					return collection.Equals(val, func(v models.Voiture) string { return v.Couleur })
				},
				Options: func(v models.Voiture) string { return v.Couleur },
			},
			{
				// Comma-separated selection; a car matches when it carries
				// every selected option.
				Name: "options",
				Build: func(val string) collection.Filter[models.Voiture] {
					return collection.Options(splitCSV(val), func(v models.Voiture) []string { return v.Options })
				},
			},
			{
				Name: "places",
				Build: func(val string) collection.Filter[models.Voiture] {
					n, err := strconv.Atoi(val)
					if err != nil {
						return func(models.Voiture) bool { return false }
					}
					return func(v models.Voiture) bool { return v.NombrePlaces >= n }
				},
			},
		},
	}
}

// ReservationView: searchable over the expanded client name and car model
// when the backend populated those references; filterable by status and start
// date range.
func ReservationView() collection.Config[models.Reservation] {
	clientName := func(r models.Reservation) string {
		if r.Client == nil {
			return ""
		}
		return r.Client.Prenom + " " + r.Client.Nom
	}
	carModel := func(r models.Reservation) string {
		if r.Voiture == nil {
			return ""
		}
		return r.Voiture.Marque + " " + r.Voiture.Modele
	}

	return collection.Config[models.Reservation]{
		PageSize: DefaultPageSize,
		SearchFields: []func(models.Reservation) string{
			clientName,
			carModel,
		},
		SortFields: map[string]func(a, b models.Reservation) int{
			"date_debut": collection.CompareTimes(func(r models.Reservation) time.Time { return r.DateDebut }),
			"prix_total": collection.CompareFloats(func(r models.Reservation) float64 { return r.PrixTotal }),
		},
		Filters: []collection.FilterSpec[models.Reservation]{
			{
				Name: "statut",
				Build: func(val string) collection.Filter[models.Reservation] {
					canonical := string(models.NormalizeStatus(val))
					return collection.Equals(canonical, func(r models.Reservation) string {
						return string(models.NormalizeStatus(string(r.Statut)))
					})
				},
				Options: func(r models.Reservation) string { return string(r.Statut) },
			},
			collection.DateRangeSpec("date_debut", func(r models.Reservation) string {
				return r.DateDebut.Format("2006-01-02T15:04:05")
			}),
		},
	}
}

// ManagerView: the admin's manager roster.
func ManagerView() collection.Config[models.Manager] {
	return collection.Config[models.Manager]{
		PageSize: DefaultPageSize,
		SearchFields: []func(models.Manager) string{
			func(m models.Manager) string { return m.Prenom + " " + m.Nom },
			func(m models.Manager) string { return m.Email },
			func(m models.Manager) string { return m.Telephone },
		},
		SortFields: map[string]func(a, b models.Manager) int{
			"nom": collection.CompareStrings(func(m models.Manager) string { return m.Nom }),
		},
		Filters: []collection.FilterSpec[models.Manager]{
			{
				Name: "statut",
				Build: func(val string) collection.Filter[models.Manager] {
					return collection.Equals(val, func(m models.Manager) string { return string(m.Statut) })
				},
				Options: func(m models.Manager) string { return string(m.Statut) },
			},
		},
	}
}

func splitCSV(val string) []string {
	parts := strings.Split(val, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
