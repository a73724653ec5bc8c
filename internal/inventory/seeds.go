package inventory

import "railbooking/internal/models"

// SeedTrains is the static catalog. Times are local strings with no timezone.
func SeedTrains() []models.Train {
	return []models.Train{
		{TrainNo: "T101", Name: "Express A", From: "Delhi", To: "Mumbai", Departure: "09:00", Arrival: "18:00",
			Seats: map[string]int{"SL": 10, "3A": 8, "2A": 5}},
		{TrainNo: "T202", Name: "Rajdhani B", From: "Delhi", To: "Kolkata", Departure: "10:00", Arrival: "20:00",
			Seats: map[string]int{"SL": 12, "3A": 6, "2A": 4}},
		{TrainNo: "T303", Name: "Duronto C", From: "Delhi", To: "Chennai", Departure: "07:00", Arrival: "22:00",
			Seats: map[string]int{"SL": 15, "3A": 10, "2A": 6}},
		{TrainNo: "UP101", Name: "Gomti Express", From: "Lucknow", To: "Delhi", Departure: "06:00", Arrival: "13:30",
			Seats: map[string]int{"SL": 15, "3A": 10, "2A": 6}},
		{TrainNo: "UP102", Name: "Prayagraj Express", From: "Prayagraj", To: "Delhi", Departure: "21:30", Arrival: "07:00",
			Seats: map[string]int{"SL": 20, "3A": 12, "2A": 8}},
		{TrainNo: "UP103", Name: "Varanasi Shatabdi", From: "Varanasi", To: "Delhi", Departure: "06:30", Arrival: "15:00",
			Seats: map[string]int{"SL": 18, "3A": 12, "2A": 6}},
		{TrainNo: "UP104", Name: "Lucknow Mail", From: "Delhi", To: "Lucknow", Departure: "22:00", Arrival: "06:00",
			Seats: map[string]int{"SL": 25, "3A": 15, "2A": 8}},
		{TrainNo: "UP105", Name: "Kanpur Intercity", From: "Kanpur", To: "Delhi", Departure: "05:00", Arrival: "11:00",
			Seats: map[string]int{"SL": 20, "3A": 10, "2A": 5}},
		{TrainNo: "UP106", Name: "Gorakhpur Express", From: "Gorakhpur", To: "Lucknow", Departure: "08:00", Arrival: "14:00",
			Seats: map[string]int{"SL": 18, "3A": 12, "2A": 6}},
		{TrainNo: "UP107", Name: "Agra Intercity", From: "Agra", To: "Lucknow", Departure: "07:00", Arrival: "13:00",
			Seats: map[string]int{"SL": 14, "3A": 10, "2A": 6}},
		{TrainNo: "UP108", Name: "Meerut Express", From: "Delhi", To: "Meerut", Departure: "08:30", Arrival: "10:30",
			Seats: map[string]int{"SL": 30, "3A": 12, "2A": 5}},
		{TrainNo: "UP109", Name: "Bareilly Mail", From: "Bareilly", To: "Delhi", Departure: "05:45", Arrival: "12:00",
			Seats: map[string]int{"SL": 18, "3A": 8, "2A": 4}},
		{TrainNo: "UP110", Name: "Noida Express", From: "Lucknow", To: "Noida", Departure: "09:30", Arrival: "16:30",
			Seats: map[string]int{"SL": 15, "3A": 10, "2A": 5}},
	}
}
