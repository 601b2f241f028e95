package domain

// Sensor is a measuring device attached to a station.
type Sensor struct {
	Code      string
	Label     string
	Magnitude string
	// Trial marks a sensor under test. Only carried by 2 bulletins.
	Trial *bool
}

// Station is a measuring point on a site.
type Station struct {
	Code    string
	Label   string
	Type    string
	Sensors []Sensor
}

// Site is a hydro site, the root of the entity hierarchy.
type Site struct {
	Code     string
	Label    string
	Type     string
	Mnemo    string
	Stations []Station
}

// Validate checks the codes of the site and everything under it.
func (s Site) Validate() error {
	if err := required("site", "", "code", s.Code); err != nil {
		return err
	}
	for _, st := range s.Stations {
		if err := required("station", s.Code, "code", st.Code); err != nil {
			return err
		}
		for _, c := range st.Sensors {
			if err := required("sensor", st.Code, "code", c.Code); err != nil {
				return err
			}
		}
	}
	return nil
}

// HasStation reports whether code names one of the site's stations.
func (s Site) HasStation(code string) bool {
	for _, st := range s.Stations {
		if st.Code == code {
			return true
		}
	}
	return false
}

// ForecastModel describes a forecasting model referenced by simulations.
type ForecastModel struct {
	Code        string
	Label       string
	Type        *int
	Description string
}

// Validate checks the model code.
func (m ForecastModel) Validate() error {
	return required("model", "", "code", m.Code)
}
