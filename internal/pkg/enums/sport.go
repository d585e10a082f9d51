package enums

// Sport represents supported sports types
type Sport string

const (
	Basketball Sport = "basketball"
	Football   Sport = "football"
	Baseball   Sport = "baseball"
	Hockey     Sport = "hockey"
	Soccer     Sport = "soccer"
	MMA        Sport = "mma"
	Unknown    Sport = "unknown"
)

// SportInfo contains additional information about a sport
type SportInfo struct {
	Name   string
	League string
}

// GetSportInfo returns sport information
func (s Sport) GetSportInfo() SportInfo {
	switch s {
	case Basketball:
		return SportInfo{
			Name:   "Basketball",
			League: "NBA",
		}
	case Football:
		return SportInfo{
			Name:   "Football",
			League: "NFL",
		}
	case Baseball:
		return SportInfo{
			Name:   "Baseball",
			League: "MLB",
		}
	case Hockey:
		return SportInfo{
			Name:   "Hockey",
			League: "NHL",
		}
	case Soccer:
		return SportInfo{
			Name:   "Soccer",
			League: "",
		}
	case MMA:
		return SportInfo{
			Name:   "MMA",
			League: "UFC",
		}
	default:
		return SportInfo{
			Name:   "Unknown",
			League: "",
		}
	}
}

// IsValid checks if sport is supported
func (s Sport) IsValid() bool {
	switch s {
	case Basketball, Football, Baseball, Hockey, Soccer, MMA:
		return true
	default:
		return false
	}
}

// String returns string representation
func (s Sport) String() string {
	return string(s)
}

// GetAllSports returns all supported sports
func GetAllSports() []Sport {
	return []Sport{
		Basketball,
		Football,
		Baseball,
		Hockey,
		Soccer,
		MMA,
	}
}

// ParseSport parses string to Sport enum
func ParseSport(s string) (Sport, bool) {
	sport := Sport(s)
	return sport, sport.IsValid()
}
