package recommendation

import "fmt"

const recommendationPrompt = `คุณเป็นผู้เชี่ยวชาญด้านการท่องเที่ยวในประเทศไทย
แนะนำสถานที่ท่องเที่ยว 5 แห่งที่เหมาะกับผู้ใช้จากข้อมูลต่อไปนี้
- ตำแหน่งปัจจุบัน: ละติจูด %.6f ลองจิจูด %.6f
- รูปแบบการเดินทาง: %s
- ระยะทางที่ต้องการ: %s
- งบประมาณ: %s
- สถานที่ที่สนใจ: %s
- กิจกรรมที่ชอบ: %s
- อารมณ์ตอนนี้: %s

ตอบเป็นภาษาไทย 5 รายการพอดี ห้ามมีข้อความอื่นนอกจากรายการ
แต่ละรายการมี 6 บรรทัดตามลำดับนี้ และคั่นแต่ละรายการด้วยบรรทัดว่างหนึ่งบรรทัด
ชื่อสถานที่: <ชื่อ>
รายละเอียด: <คำอธิบายสั้นๆ>
ที่ตั้ง: <ที่อยู่หรือจังหวัด>
วันเปิดทำการ: <วันที่เปิด>
เวลาเปิด-ปิด: <เวลา>
ระยะทาง: <ระยะทางโดยประมาณจากตำแหน่งปัจจุบัน>`

const translateNamePrompt = `Translate the following Thai place name into %s.
Reply with the translated name only, without quotes or explanation.

%s`

func buildRecommendationPrompt(c Choices) string {
	return fmt.Sprintf(recommendationPrompt,
		c.Latitude, c.Longitude,
		c.Trip, c.Distance, c.Value, c.LocationInterest, c.Activities, c.Emotional,
	)
}

func buildTranslateNamePrompt(language, name string) string {
	return fmt.Sprintf(translateNamePrompt, language, name)
}
