package schema

// Engineering watch log field keys.
const (
	KeyVesselName         = "vesselName"
	KeyWatchPeriod        = "watchPeriod"
	KeyOfficerOnWatch     = "officerOnWatch"
	KeyMainEngineRPM      = "mainEngineRPM"
	KeyMainEngineLoad     = "mainEngineLoadPercent"
	KeyFuelConsumption    = "fuelConsumptionMTPerDay"
	KeyAlarmsFaults       = "alarmsFaults"
	KeyCorrectiveActions  = "correctiveActions"
	EngineeringSchemaName = "engineering-watch-log"
)

// EngineeringWatchLog is the default eight-field operations log.
func EngineeringWatchLog() *Schema {
	return &Schema{
		Name: EngineeringSchemaName,
		Fields: []Field{
			{
				Key:      KeyVesselName,
				Required: true,
				Prompt:   "What is the vessel name?",
				Label:    "Vessel",
				Kind:     KindText,
			},
			{
				Key:      KeyWatchPeriod,
				Required: true,
				Prompt:   "What was the watch period?",
				Label:    "Watch Period",
				Kind:     KindText,
			},
			{
				Key:      KeyOfficerOnWatch,
				Required: true,
				Prompt:   "Who was the officer on watch?",
				Label:    "Officer on Watch",
				Kind:     KindText,
			},
			{
				Key:      KeyMainEngineRPM,
				Required: true,
				Prompt:   "What was the main engine RPM?",
				Label:    "Main Engine RPM",
				Kind:     KindNumber,
				Min:      Bound(0),
				Max:      Bound(3000),
			},
			{
				Key:      KeyMainEngineLoad,
				Required: true,
				Prompt:   "What was the main engine load percentage?",
				Label:    "Engine Load (%)",
				Kind:     KindNumber,
				Min:      Bound(0),
				Max:      Bound(100),
			},
			{
				Key:       KeyFuelConsumption,
				Required:  true,
				Prompt:    "What was the fuel consumption (MT/day)?",
				Label:     "Fuel Consumption (MT/day)",
				Kind:      KindNumber,
				Min:       Bound(0),
				Precision: 2,
			},
			{
				Key:      KeyAlarmsFaults,
				Required: true,
				Prompt:   "Were any alarms or faults triggered? (Say 'none' if not)",
				Label:    "Alarms/Faults",
				Kind:     KindText,
			},
			{
				Key:      KeyCorrectiveActions,
				Required: true,
				Prompt:   "What corrective actions were taken?",
				Label:    "Actions Taken",
				Kind:     KindText,
			},
		},
	}
}
