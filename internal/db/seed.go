package db

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"retreat-booking-backend/internal/model"
)

type seedUnit struct {
	name        string
	location    string
	unitType    string
	capacity    int
	description string
	bookable    bool
	order       int
}

// initialUnits is the property's unit inventory. Facilities are kept in the
// catalog for maintenance tracking but are never guest-bookable.
var initialUnits = []seedUnit{
	// Lodge rooms, downstairs then upstairs
	{"Lodge Room 1", "Lodge", "private", 1, "Private room downstairs", true, 1},
	{"Lodge Room 2", "Lodge", "private", 1, "Private room downstairs", true, 2},
	{"Lodge Room 3", "Lodge", "private", 1, "Private room downstairs", true, 3},
	{"Lodge Room 4", "Lodge", "private", 1, "Private room downstairs", true, 4},
	{"Lodge Room 5", "Lodge", "private", 1, "Private room upstairs", true, 5},
	{"Lodge Room 6", "Lodge", "private", 1, "Private room upstairs", true, 6},
	{"Lodge Room 7", "Lodge", "private", 1, "Private room upstairs", true, 7},
	{"Lodge Dormroom", "Lodge", "dorm", 6, "Dormroom with space for 6 people (3 bunkbeds) downstairs", true, 8},

	// Uptown cabins
	{"Uptown Cabin 1", "Uptown", "private", 1, "Private cabin 1 in Uptown area", true, 11},
	{"Uptown Cabin 2", "Uptown", "private", 1, "Private cabin 2 in Uptown area", true, 12},
	{"Uptown Cabin 3", "Uptown", "private", 1, "Private cabin 3 in Uptown area", true, 13},
	{"Uptown Cabin 4", "Uptown", "private", 1, "Private cabin 4 in Uptown area", true, 14},
	{"Uptown Cabin 5", "Uptown", "private", 1, "Private cabin 5 in Uptown area", true, 15},

	// Downtown cabins
	{"Downtown Cabin 1 (Woodshed)", "Downtown", "private", 1, "Woodshed cabin", true, 21},
	{"Downtown Cabin 2 (Craft)", "Downtown", "private", 1, "Craft cabin", true, 22},
	{"Downtown Cabin 3 (Caboose)", "Downtown", "private", 1, "Caboose cabin", true, 23},
	{"Downtown Cabin 4 (Woodshop)", "Downtown", "private", 1, "Woodshop cabin", true, 24},

	// A-frame camping cabins
	{"A-frame Cabin 1", "A-frame", "camping", 3, "Camping cabin 1 with 3 beds", true, 31},
	{"A-frame Cabin 2", "A-frame", "camping", 3, "Camping cabin 2 with 3 beds", true, 32},
	{"A-frame Cabin 3", "A-frame", "camping", 3, "Camping cabin 3 with 3 beds", true, 33},
	{"A-frame Cabin 4", "A-frame", "camping", 3, "Camping cabin 4 with 3 beds", true, 34},

	// Residential houses
	{"House 1 (Neighbor House)", "Residential", "house", 4, "Neighbor house residential unit", true, 41},
	{"House 2 (Easley House)", "Residential", "house", 4, "Easley house residential unit", true, 42},

	// Shared facilities: tracked for maintenance, not guest-bookable.
	// Capacity is real occupancy where one exists (classroom seats 15).
	{"A-frame Classroom", "Facilities", "classroom", 15, "Classroom space for up to 15 with instructor/guest loft", false, 101},
	{"Artist Studio", "Facilities", "studio", 1, "Artist studio with 1 bed", true, 102},
	{"Showerhouse", "Facilities", "facility", 0, "Community shower facilities", false, 103},
	{"Community Kitchen", "Facilities", "kitchen", 0, "Shared community kitchen", false, 104},
	{"Dining Hall", "Facilities", "facility", 0, "Community dining hall", false, 105},
	{"Laundry Room", "Facilities", "facility", 0, "Shared laundry facilities", false, 106},
	{"Apothecary", "Facilities", "facility", 0, "Apothecary and wellness space", false, 107},
	{"Shop", "Facilities", "facility", 0, "General shop and workspace", false, 108},
}

// SeedUnits inserts the initial lodging-unit inventory if the catalog is
// empty. Existing catalogs are left untouched.
func SeedUnits(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.LodgingUnit{}).Count(&count).Error; err != nil {
		return fmt.Errorf("counting lodging units: %w", err)
	}
	if count > 0 {
		return nil
	}

	units := make([]model.LodgingUnit, 0, len(initialUnits))
	for _, u := range initialUnits {
		units = append(units, model.LodgingUnit{
			Name:            u.name,
			Location:        u.location,
			Type:            u.unitType,
			Capacity:        u.capacity,
			Description:     u.description,
			IsActive:        true,
			IsGuestBookable: u.bookable,
			DisplayOrder:    u.order,
		})
	}

	log.Printf("Seeding %d lodging units...", len(units))
	return db.Create(&units).Error
}
