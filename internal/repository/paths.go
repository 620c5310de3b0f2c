package repository

import "github.com/strandshq/strands-api/internal/docstore"

// Collection names. Nesting is expressed through the typed builders below so
// an invalid path cannot be assembled from string fragments.
const (
	ColSalons          = "salons"
	ColManagers        = "salon_managers"
	ColSuperAdmin      = "super_admin_setting"
	ColSettings        = "settings"
	ColProducts        = "products"
	ColSales           = "sales"
	ColStylists        = "stylists"
	ColClients         = "clients"
	ColRecommendations = "recommendations"
)

// Well-known document ids inside settings collections.
const (
	DocPlatformConfig = "platform_config"
	DocAppConfig      = "app_config"
	DocProfile        = "profile"
	DocSuperAdmin     = "root"
)

// SalonsCol is the root tenant directory.
func SalonsCol() docstore.CollectionRef { return docstore.Root(ColSalons) }

// ManagersCol is the global manager directory.
func ManagersCol() docstore.CollectionRef { return docstore.Root(ColManagers) }

// SuperAdminCol holds the platform super-admin singleton.
func SuperAdminCol() docstore.CollectionRef { return docstore.Root(ColSuperAdmin) }

// PlatformSettingsCol holds platform_config and the app_config default.
func PlatformSettingsCol() docstore.CollectionRef { return docstore.Root(ColSettings) }

// SalonSettingsCol holds a tenant's profile and app_config documents.
func SalonSettingsCol(salonID string) docstore.CollectionRef {
	return SalonsCol().Doc(salonID).Collection(ColSettings)
}

// ProductsCol is a tenant's product catalog.
func ProductsCol(salonID string) docstore.CollectionRef {
	return SalonsCol().Doc(salonID).Collection(ColProducts)
}

// SalesCol is a tenant's sales ledger.
func SalesCol(salonID string) docstore.CollectionRef {
	return SalonsCol().Doc(salonID).Collection(ColSales)
}

// StylistsCol is a tenant's stylist roster.
func StylistsCol(salonID string) docstore.CollectionRef {
	return SalonsCol().Doc(salonID).Collection(ColStylists)
}

// ClientsCol is a stylist's client book.
func ClientsCol(salonID, stylistID string) docstore.CollectionRef {
	return StylistsCol(salonID).Doc(stylistID).Collection(ColClients)
}

// RecommendationsCol is a stylist's AI recommendation log.
func RecommendationsCol(salonID, stylistID string) docstore.CollectionRef {
	return StylistsCol(salonID).Doc(stylistID).Collection(ColRecommendations)
}
