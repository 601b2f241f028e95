package tags

// common holds the names both generations agree on.
var common = map[Key]string{
	Root:        "hydrometrie",
	RefSection:  "RefHyd",
	DataSection: "Donnees",
	SchemeAttr:  "schemeAgencyID",

	Scenario:        "Scenario",
	ScenarioCode:    "CodeScenario",
	ScenarioVersion: "VersionScenario",
	ScenarioName:    "NomScenario",
	ScenarioCreated: "DateHeureCreationFichier",
	Emitter:         "Emetteur",
	Recipient:       "Destinataire",

	Intervenants:     "Intervenants",
	Intervenant:      "Intervenant",
	IntervenantCode:  "CdIntervenant",
	IntervenantName:  "NomIntervenant",
	IntervenantMnemo: "MnIntervenant",
	Contacts:         "Contacts",
	Contact:          "Contact",
	ContactCode:      "CdContact",
	ContactName:      "NomContact",
	ContactFirstName: "PrenomContact",
	ContactCivility:  "CiviliteContact",

	Sites:         "SitesHydro",
	Site:          "SiteHydro",
	SiteCode:      "CdSiteHydro",
	SiteLabel:     "LbSiteHydro",
	SiteType:      "TypSiteHydro",
	SiteMnemo:     "MnSiteHydro",
	Stations:      "StationsHydro",
	Station:       "StationHydro",
	StationCode:   "CdStationHydro",
	StationLabel:  "LbStationHydro",
	StationType:   "TypStationHydro",
	Sensors:       "Capteurs",
	Sensor:        "Capteur",
	SensorCode:    "CdCapteur",
	SensorLabel:   "LbCapteur",
	SensorMeasure: "TypMesureCapteur",

	SiteThresholdFlow:           "ValDebitSeuilSiteHydro",
	SiteThresholdActivated:      "DtActivationSeuilSiteHydro",
	SiteThresholdDeactivated:    "DtDesactivationSeuilSiteHydro",
	SiteThresholdTolerance:      "ToleranceSeuilSiteHydro",
	StationThresholdHeight:      "ValHauteurSeuilStationHydro",
	StationThresholdActivated:   "DtActivationSeuilStationHydro",
	StationThresholdDeactivated: "DtDesactivationSeuilStationHydro",
	StationThresholdTolerance:   "ToleranceSeuilStationHydro",

	Models:           "ModelesPrevision",
	Model:            "ModelePrevision",
	ModelCode:        "CdModelePrevision",
	ModelLabel:       "LbModelePrevision",
	ModelType:        "TypModelePrevision",
	ModelDescription: "DescModelePrevision",

	Events:           "Evenements",
	Event:            "Evenement",
	EventDate:        "DtEvenement",
	EventDescription: "DescEvenement",
	EventUpdated:     "DtMajEvenement",

	SeriesList:            "Series",
	Series:                "Serie",
	SeriesMagnitude:       "GrdSerie",
	SeriesStart:           "DtDebSerie",
	SeriesEnd:             "DtFinSerie",
	Observations:          "ObssHydro",
	Observation:           "ObsHydro",
	ObservationDate:       "DtObsHydro",
	ObservationValue:      "ResObsHydro",
	ObservationMethod:     "MethObsHydro",
	ObservationQuality:    "QualObsHydro",
	ObservationContinuity: "ContObsHydro",

	SimulationMagnitude: "GrdSimul",
	SimulationProduced:  "DtProdSimul",
	SimulationQuality:   "IndiceQualiteSimul",
	SimulationPublic:    "PubliSimul",
	SimulationComment:   "ComSimul",
	Forecasts:           "Prevs",
	Forecast:            "Prev",
	ForecastDate:        "DtPrev",
	ForecastMean:        "ResMoyPrev",
	ForecastMin:         "ResMinPrev",
	ForecastMax:         "ResMaxPrev",
	Probabilities:       "ProbsPrev",
	Probability:         "ProbPrev",
	ProbabilityPercent:  "PProbPrev",
	ProbabilityResult:   "ResProbPrev",
}

// v11Names: thresholds are site-scoped groups carrying at most one site
// value, and entities are addressed through CdEntiteHydro.
var v11Names = map[Key]string{
	GenericEntityCode: "CdEntiteHydro",

	ContactEmail: "MelContact",

	ThresholdGroups:        "ValeursSeuilsSiteHydro",
	ThresholdGroup:         "ValeursSeuilSiteHydro",
	ThresholdCode:          "CdSeuilSiteHydro",
	ThresholdType:          "TypSeuilSiteHydro",
	ThresholdNature:        "NatureSeuilSiteHydro",
	ThresholdDuration:      "DureeSeuilSiteHydro",
	ThresholdLabel:         "LbUsuelSeuilSiteHydro",
	ThresholdMnemo:         "MnemoSeuilSiteHydro",
	ThresholdSeverity:      "IndiceGraviteSeuilSiteHydro",
	ThresholdForced:        "ValForceeSeuilSiteHydro",
	ThresholdPublication:   "TypPubliSeuilSiteHydro",
	ThresholdComment:       "ComSeuilSiteHydro",
	ThresholdUpdated:       "DtMajSeuilSiteHydro",
	StationThresholdValues: "ValeursSeuilsStationHydro",
	StationThresholdValue:  "ValeursSeuilStationHydro",

	EventPublication: "TypPublicationEvenement",

	SeriesStatus: "StatutSerie",

	Simulations:      "Simulations",
	Simulation:       "Simulation",
	SimulationStatus: "StatutSimul",
}

// v2Names: thresholds are standalone elements referencing their site and
// holding any number of site values.
var v2Names = map[Key]string{
	SensorTrial: "EssaiCapteur",

	ContactEmail: "AdEMailContact",

	ThresholdGroups:        "SeuilsHydro",
	ThresholdGroup:         "SeuilHydro",
	ThresholdCode:          "CdSeuilHydro",
	ThresholdType:          "TypSeuilHydro",
	ThresholdNature:        "NatureSeuilHydro",
	ThresholdDuration:      "DureeSeuilHydro",
	ThresholdLabel:         "LbUsuelSeuilHydro",
	ThresholdMnemo:         "MnemoSeuilHydro",
	ThresholdSeverity:      "IndiceGraviteSeuilHydro",
	ThresholdForced:        "ValForceeSeuilHydro",
	ThresholdPublication:   "TypPubliSeuilHydro",
	ThresholdComment:       "ComSeuilHydro",
	ThresholdUpdated:       "DtMajSeuilHydro",
	SiteThresholdValues:    "ValsSeuilSiteHydro",
	SiteThresholdValue:     "ValSeuilSiteHydro",
	StationThresholdValues: "ValsSeuilStationHydro",
	StationThresholdValue:  "ValSeuilStationHydro",

	EventPublication: "PubliEvenement",
	EventEnd:         "DtFinEvenement",

	SeriesProduced: "DtProdSerie",
	SeriesStatus:   "StSerie",

	Simulations:      "Simuls",
	Simulation:       "Simul",
	SimulationStatus: "StSimul",
}
