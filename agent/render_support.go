package agent

// WorldPart returns body part i's world-space position. Exported for the
// renderer, which needs the same per-part placement the physics kernel
// uses for trail deposits and force application (spec §4.8: rasterization
// reuses computed per-part world positions).
func WorldPart(rec *Record, i int) (float32, float32) {
	return worldPart(rec, i)
}

// IdentityColor returns an agent's stable identity color, derived the
// same way the trail-deposit color is (spec §4.4).
func IdentityColor(rec *Record) (float32, float32, float32) {
	return identityColor(rec, int(rec.BodyCount))
}

// Amplification returns part i's enabler-proximity amplification factor
// in [0,1], exported for the renderer's organ glyph/propeller-jet sizing.
func Amplification(rec *Record, i int) float32 {
	return amplification(rec, i, int(rec.BodyCount))
}
