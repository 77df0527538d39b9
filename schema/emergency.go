package schema

const EmergencyProfileCollection = "emergencyProfile"

type EmergencyContact struct {
	Name     string `json:"name" bson:"name"`
	Relation string `json:"relation" bson:"relation"`
	Phone    string `json:"phone" bson:"phone"`
}

// EmergencyProfile is the one-per-user emergency card. It is replaced
// wholesale on every save.
type EmergencyProfile struct {
	UserID            string             `json:"user_id" bson:"user_id"`
	BloodGroup        string             `json:"blood_group" bson:"blood_group"`
	Allergies         []string           `json:"allergies" bson:"allergies"`
	Medications       []string           `json:"medications" bson:"medications"`
	ChronicConditions []string           `json:"chronic_conditions" bson:"chronic_conditions"`
	Contacts          []EmergencyContact `json:"contacts" bson:"contacts"`
	DoctorName        string             `json:"doctor_name,omitempty" bson:"doctor_name,omitempty"`
	DoctorPhone       string             `json:"doctor_phone,omitempty" bson:"doctor_phone,omitempty"`
}
