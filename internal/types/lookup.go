package types

type Picture struct {
	PictureID  int    `json:"picture_id"`
	Theme      string `json:"theme"`
	PictureURL string `json:"picture_url"`
}

type Activity struct {
	ActivityID   int    `json:"activity_id"`
	ActivityName string `json:"activity_name"`
}

type TravelType struct {
	TripID   int    `json:"trip_id"`
	TripName string `json:"trip_name"`
}

type DistanceBand struct {
	DistanceID   int    `json:"distance_id"`
	DistanceName string `json:"distance_name"`
}

type ValueTier struct {
	ValueID   int    `json:"value_id"`
	ValueName string `json:"value_name"`
}

type EmotionalState struct {
	EmotionalID   int    `json:"emotional_id"`
	EmotionalName string `json:"emotional_name"`
}

type Province struct {
	ProvinceID   int    `json:"province_id"`
	ProvinceName string `json:"province_name"`
	RegionID     int    `json:"region_id"`
}
