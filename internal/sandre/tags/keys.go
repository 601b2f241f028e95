package tags

// Key names a semantic field independently of the wire generation.
type Key string

// Document skeleton.
const (
	Root        Key = "root"
	RefSection  Key = "ref_section"
	DataSection Key = "data_section"
	SchemeAttr  Key = "scheme_attr"
)

// Scenario header.
const (
	Scenario        Key = "scenario"
	ScenarioCode    Key = "scenario_code"
	ScenarioVersion Key = "scenario_version"
	ScenarioName    Key = "scenario_name"
	ScenarioCreated Key = "scenario_created"
	Emitter         Key = "emitter"
	Recipient       Key = "recipient"
)

// Intervenants and contacts.
const (
	Intervenants     Key = "intervenants"
	Intervenant      Key = "intervenant"
	IntervenantCode  Key = "intervenant_code"
	IntervenantName  Key = "intervenant_name"
	IntervenantMnemo Key = "intervenant_mnemo"
	Contacts         Key = "contacts"
	Contact          Key = "contact"
	ContactCode      Key = "contact_code"
	ContactName      Key = "contact_name"
	ContactFirstName Key = "contact_first_name"
	ContactCivility  Key = "contact_civility"
	ContactEmail     Key = "contact_email"
)

// Sites, stations, sensors.
const (
	Sites             Key = "sites"
	Site              Key = "site"
	SiteCode          Key = "site_code"
	SiteLabel         Key = "site_label"
	SiteType          Key = "site_type"
	SiteMnemo         Key = "site_mnemo"
	Stations          Key = "stations"
	Station           Key = "station"
	StationCode       Key = "station_code"
	StationLabel      Key = "station_label"
	StationType       Key = "station_type"
	Sensors           Key = "sensors"
	Sensor            Key = "sensor"
	SensorCode        Key = "sensor_code"
	SensorLabel       Key = "sensor_label"
	SensorMeasure     Key = "sensor_measure"
	SensorTrial       Key = "sensor_trial"
	GenericEntityCode Key = "generic_entity_code"
)

// Thresholds.
const (
	ThresholdGroups             Key = "threshold_groups"
	ThresholdGroup              Key = "threshold_group"
	ThresholdCode               Key = "threshold_code"
	ThresholdType               Key = "threshold_type"
	ThresholdNature             Key = "threshold_nature"
	ThresholdDuration           Key = "threshold_duration"
	ThresholdLabel              Key = "threshold_label"
	ThresholdMnemo              Key = "threshold_mnemo"
	ThresholdSeverity           Key = "threshold_severity"
	ThresholdForced             Key = "threshold_forced"
	ThresholdPublication        Key = "threshold_publication"
	ThresholdComment            Key = "threshold_comment"
	ThresholdUpdated            Key = "threshold_updated"
	SiteThresholdValues         Key = "site_threshold_values"
	SiteThresholdValue          Key = "site_threshold_value"
	SiteThresholdFlow           Key = "site_threshold_flow"
	SiteThresholdActivated      Key = "site_threshold_activated"
	SiteThresholdDeactivated    Key = "site_threshold_deactivated"
	SiteThresholdTolerance      Key = "site_threshold_tolerance"
	StationThresholdValues      Key = "station_threshold_values"
	StationThresholdValue       Key = "station_threshold_value"
	StationThresholdHeight      Key = "station_threshold_height"
	StationThresholdActivated   Key = "station_threshold_activated"
	StationThresholdDeactivated Key = "station_threshold_deactivated"
	StationThresholdTolerance   Key = "station_threshold_tolerance"
)

// Forecast models.
const (
	Models           Key = "models"
	Model            Key = "model"
	ModelCode        Key = "model_code"
	ModelLabel       Key = "model_label"
	ModelType        Key = "model_type"
	ModelDescription Key = "model_description"
)

// Events.
const (
	Events           Key = "events"
	Event            Key = "event"
	EventDate        Key = "event_date"
	EventDescription Key = "event_description"
	EventPublication Key = "event_publication"
	EventUpdated     Key = "event_updated"
	EventEnd         Key = "event_end"
)

// Observation series.
const (
	SeriesList            Key = "series_list"
	Series                Key = "series"
	SeriesMagnitude       Key = "series_magnitude"
	SeriesStart           Key = "series_start"
	SeriesEnd             Key = "series_end"
	SeriesProduced        Key = "series_produced"
	SeriesStatus          Key = "series_status"
	Observations          Key = "observations"
	Observation           Key = "observation"
	ObservationDate       Key = "observation_date"
	ObservationValue      Key = "observation_value"
	ObservationMethod     Key = "observation_method"
	ObservationQuality    Key = "observation_quality"
	ObservationContinuity Key = "observation_continuity"
)

// Simulations and forecasts.
const (
	Simulations         Key = "simulations"
	Simulation          Key = "simulation"
	SimulationMagnitude Key = "simulation_magnitude"
	SimulationProduced  Key = "simulation_produced"
	SimulationQuality   Key = "simulation_quality"
	SimulationStatus    Key = "simulation_status"
	SimulationPublic    Key = "simulation_public"
	SimulationComment   Key = "simulation_comment"
	Forecasts           Key = "forecasts"
	Forecast            Key = "forecast"
	ForecastDate        Key = "forecast_date"
	ForecastMean        Key = "forecast_mean"
	ForecastMin         Key = "forecast_min"
	ForecastMax         Key = "forecast_max"
	Probabilities       Key = "probabilities"
	Probability         Key = "probability"
	ProbabilityPercent  Key = "probability_percent"
	ProbabilityResult   Key = "probability_result"
)
