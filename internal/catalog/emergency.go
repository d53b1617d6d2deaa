package catalog

import (
	"slices"

	"github.com/ngmaloney/citybuddy/internal/models"
)

var emergencyServices = []models.EmergencyService{
	// Hospitals
	{Name: "Toronto General Hospital", Type: models.ServiceHospital, Address: "200 Elizabeth St, Toronto, ON M5G 2C4", Distance: "1.2 km", Phone: "(416) 340-4800"},
	{Name: "St. Michael's Hospital", Type: models.ServiceHospital, Address: "30 Bond St, Toronto, ON M5B 1W8", Distance: "0.8 km", Phone: "(416) 360-4000"},
	{Name: "Mount Sinai Hospital", Type: models.ServiceHospital, Address: "600 University Ave, Toronto, ON M5G 1X5", Distance: "1.0 km", Phone: "(416) 596-4200"},
	{Name: "Toronto Western Hospital", Type: models.ServiceHospital, Address: "399 Bathurst St, Toronto, ON M5T 2S8", Distance: "1.5 km", Phone: "(416) 603-5800"},

	// Clinics
	{Name: "Medcan Clinic", Type: models.ServiceClinic, Address: "150 York St, Toronto, ON M5H 3S5", Distance: "0.2 km", Phone: "(416) 350-5900"},
	{Name: "Appletree Medical Group - Bay Street", Type: models.ServiceClinic, Address: "150 Bay St, Toronto, ON M5J 1T6", Distance: "0.3 km", Phone: "(416) 967-7171"},
	{Name: "Shoppers Drug Mart Clinic", Type: models.ServiceClinic, Address: "220 Yonge St, Toronto, ON M5B 2H1", Distance: "0.7 km", Phone: "(416) 979-2424"},
	{Name: "Toronto Walk-In Clinic - King Street", Type: models.ServiceClinic, Address: "200 King St W, Toronto, ON M5H 3T4", Distance: "0.4 km", Phone: "(416) 599-0777"},
	{Name: "Medisys Health Group", Type: models.ServiceClinic, Address: "150 Bloor St W, Toronto, ON M5S 2X9", Distance: "1.1 km", Phone: "(416) 964-9664"},

	// Police
	{Name: "Toronto Police Service - 52 Division", Type: models.ServicePolice, Address: "255 Dundas St W, Toronto, ON M5G 1Z9", Distance: "0.6 km", Phone: "(416) 808-5200"},
	{Name: "Toronto Police Service - 14 Division", Type: models.ServicePolice, Address: "350 Dovercourt Rd, Toronto, ON M6J 3E5", Distance: "2.0 km", Phone: "(416) 808-1400"},
	{Name: "Toronto Police Service - 51 Division", Type: models.ServicePolice, Address: "51 Parliament St, Toronto, ON M5A 2Y4", Distance: "1.8 km", Phone: "(416) 808-5100"},
}

// EmergencyServices returns the downtown hospitals, clinics and police stations.
// postalCode is accepted for call-site symmetry but does not filter the list.
func EmergencyServices(postalCode string) []models.EmergencyService {
	return slices.Clone(emergencyServices)
}
