package gen

import (
	"bufio"
	"fmt"
	"io"
	mrand "math/rand"
	"os"
	"strconv"

	"github.com/pingcap/go-ycsb/pkg/generator"
	"golang.org/x/exp/rand"
)

// Spread of a station's readings around its mean, in tenths.
const SPREAD = 100

var stationNames = []string{
	"Abha", "Abidjan", "Accra", "Addis Ababa", "Adelaide", "Aden", "Ahvaz",
	"Albuquerque", "Alexandria", "Algiers", "Alice Springs", "Almaty",
	"Amsterdam", "Anadyr", "Anchorage", "Andorra la Vella", "Ankara",
	"Antananarivo", "Antsiranana", "Arkhangelsk", "Ashgabat", "Asmara",
	"Assab", "Astana", "Athens", "Atlanta", "Auckland", "Austin", "Baghdad",
	"Baguio", "Baku", "Baltimore", "Bamako", "Bangkok", "Bangui", "Banjul",
	"Barcelona", "Bata", "Batumi", "Beijing", "Beirut", "Belgrade",
	"Belize City", "Benghazi", "Bergen", "Berlin", "Bilbao", "Birao",
	"Bishkek", "Bissau", "Blantyre", "Bloemfontein", "Boise", "Bordeaux",
	"Bosaso", "Boston", "Bouaké", "Bratislava", "Brazzaville", "Bridgetown",
	"Brisbane", "Brussels", "Bucharest", "Budapest", "Bujumbura", "Bulawayo",
	"Burnie", "Busan", "Cabo San Lucas", "Cairns", "Cairo", "Calgary",
	"Canberra", "Cape Town", "Changsha", "Charlotte", "Chiang Mai",
	"Chicago", "Chihuahua", "Chișinău", "Chittagong", "Chongqing",
	"Christchurch", "City of San Marino", "Colombo", "Columbus", "Conakry",
	"Copenhagen", "Cotonou", "Cracow", "Da Lat", "Da Nang", "Dakar",
	"Dallas", "Damascus", "Dampier", "Dar es Salaam", "Darwin", "Denpasar",
	"Denver", "Detroit", "Dhaka", "Dikson", "Dili", "Djibouti", "Dodoma",
	"Dolisie", "Douala", "Dubai", "Dublin", "Dunedin", "Durban", "Dushanbe",
	"Edinburgh", "Edmonton", "El Paso", "Entebbe", "Erbil", "Erzurum",
	"Fairbanks", "Fianarantsoa", "Frankfurt",
	"Fresno", "Fukuoka", "Gabès", "Gaborone", "Gagnoa", "Gangtok", "Garissa",
	"Garoua", "George Town", "Ghanzi", "Gjoa Haven", "Guadalajara",
	"Guangzhou", "Guatemala City", "Halifax", "Hamburg", "Hamilton",
	"Hanga Roa", "Hanoi", "Harare", "Harbin", "Hargeisa", "Hat Yai",
	"Havana", "Helsinki", "Heraklion", "Hiroshima", "Ho Chi Minh City",
	"Hobart", "Hong Kong", "Honiara", "Honolulu", "Houston", "Ifrane",
	"Indianapolis", "Iqaluit", "Irkutsk", "Istanbul", "İzmir", "Jacksonville",
	"Jakarta", "Jayapura", "Jerusalem", "Johannesburg", "Jos", "Juba",
}

type Config struct {
	Rows     int
	Stations int
	Seed     uint64
}

type station struct {
	name string
	mean int
}

// Generate writes cfg.Rows "station;value" lines. Station popularity
// follows a scrambled Zipfian distribution and each reading lies within
// SPREAD tenths of its station's mean, clamped to [-99.9, 99.9].
func Generate(w io.Writer, cfg Config) error {
	if cfg.Stations < 1 {
		return fmt.Errorf("need at least one station, got %d", cfg.Stations)
	}

	vr := rand.New(rand.NewSource(cfg.Seed))
	stations := make([]station, cfg.Stations)
	for i := range stations {
		name := stationNames[i%len(stationNames)]
		if i >= len(stationNames) {
			name = fmt.Sprintf("%s %d", name, i/len(stationNames))
		}
		stations[i] = station{
			name: name,
			mean: vr.Intn(700) - 300,
		}
	}

	zr := mrand.New(mrand.NewSource(int64(cfg.Seed)))
	z := generator.NewScrambledZipfian(0, int64(cfg.Stations-1), generator.ZipfianConstant)

	bw := bufio.NewWriter(w)
	for range cfg.Rows {
		s := stations[z.Next(zr)]
		t := s.mean + vr.Intn(2*SPREAD+1) - SPREAD
		t = max(min(t, 999), -999)

		bw.WriteString(s.name)
		bw.WriteByte(';')
		bw.WriteString(FormatTenths(t))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("unable to write measurements: %w", err)
	}
	return nil
}

// WriteFile generates measurements into a new file at path.
func WriteFile(path string, cfg Config) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create %s: %w", path, err)
	}
	if err := Generate(f, cfg); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close %s: %w", path, err)
	}
	return nil
}

// FormatTenths renders t tenths as a value with one fractional digit.
func FormatTenths(t int) string {
	if t == 0 {
		return "0.0"
	}
	return strconv.FormatFloat(float64(t)/10, 'f', 1, 64)
}
