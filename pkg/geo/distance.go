package geo

import "math"

// EarthRadiusKm은 평균 지구 반지름(km)입니다
const EarthRadiusKm = 6371.0

type Point struct {
	Lat float64
	Lon float64
}

// Distance는 두 좌표(도 단위) 사이의 대원 거리를 km로 반환합니다 (haversine)
func Distance(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRadians(lat2 - lat1)
	dLon := toRadians(lon2 - lon1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(lat1))*math.Cos(toRadians(lat2))*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

func (p Point) DistanceTo(q Point) float64 {
	return Distance(p.Lat, p.Lon, q.Lat, q.Lon)
}

// FormatDistance는 거리를 소수점 둘째 자리로 반올림합니다.
// 반경 비교와 응답 값 모두 이 값을 사용합니다.
func FormatDistance(km float64) float64 {
	return math.Round(km*100) / 100
}

// WithinRadius는 반올림된 거리가 반경 이내(경계 포함)인지 확인합니다
func WithinRadius(km float64, radius int) bool {
	return FormatDistance(km) <= float64(radius)
}

func ValidLatitude(lat float64) bool {
	return !math.IsNaN(lat) && lat >= -90 && lat <= 90
}

func ValidLongitude(lon float64) bool {
	return !math.IsNaN(lon) && lon >= -180 && lon <= 180
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
