package world

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"math"
)

// StateDigest hashes every citizen and structure in creation order. Two
// worlds fed the same config, seed and operations produce the same digest.
func (w *World) StateDigest() string {
	h := sha256.New()
	var tmp [8]byte

	digestWriteI64(h, &tmp, int64(w.day))
	for _, id := range w.citizenOrder {
		c := w.citizens[id]
		digestWriteString(h, &tmp, c.ID)
		digestWriteString(h, &tmp, c.Name)
		digestWriteString(h, &tmp, string(c.Skill))
		digestWriteF64(h, &tmp, c.cash)
		digestWriteU64(h, &tmp, uint64(c.occupation.Kind))
		digestWriteU64(h, &tmp, uint64(c.occupation.Role))
		digestWriteString(h, &tmp, c.occupation.StructureID)
		digestWriteString(h, &tmp, c.residence)
	}
	for _, o := range w.offices {
		w.digestBuilding(h, &tmp, &o.Building)
		digestPayroll(h, &tmp, &o.payroll)
		if o.Product != nil {
			h.Write([]byte{1})
			digestWriteF64(h, &tmp, o.Product.Quality)
			digestWriteI64(h, &tmp, int64(o.Product.ReleaseDay))
		} else {
			h.Write([]byte{0})
		}
	}
	for _, f := range w.farms {
		w.digestBuilding(h, &tmp, &f.Building)
		digestPayroll(h, &tmp, &f.payroll)
		h.Write([]byte{boolByte(f.planted)})
		digestWriteI64(h, &tmp, int64(f.plantingDay))
	}
	for _, a := range w.apartments {
		w.digestBuilding(h, &tmp, &a.Building)
		digestWriteF64(h, &tmp, a.RentPerSqft)
		digestWriteU64(h, &tmp, uint64(len(a.renters)))
		for _, id := range a.renters {
			digestWriteString(h, &tmp, id)
		}
	}
	for _, p := range w.plants {
		w.digestBuilding(h, &tmp, &p.Building)
		digestWriteString(h, &tmp, string(p.Source))
	}
	return hex.EncodeToString(h.Sum(nil))
}

func (w *World) digestBuilding(h hashWriter, tmp *[8]byte, b *Building) {
	digestWriteString(h, tmp, b.ID)
	digestWriteString(h, tmp, b.OwnerID)
	digestWriteF64(h, tmp, b.Treasury)
	digestWriteF64(h, tmp, b.AdministrationEfficiency)
	digestWriteF64(h, tmp, b.Blueprint.Width)
	digestWriteF64(h, tmp, b.Blueprint.Depth)
	digestWriteU64(h, tmp, uint64(len(b.employed)))
	for _, id := range b.employed {
		digestWriteString(h, tmp, id)
	}
}

func digestPayroll(h hashWriter, tmp *[8]byte, p *payroll) {
	digestWriteF64(h, tmp, p.wage)
	h.Write([]byte{boolByte(p.bankrupt)})
	digestWriteI64(h, tmp, int64(p.bankruptSince))
}

func digestWriteU64(h hashWriter, tmp *[8]byte, v uint64) {
	binary.LittleEndian.PutUint64(tmp[:], v)
	h.Write(tmp[:])
}

func digestWriteI64(h hashWriter, tmp *[8]byte, v int64) {
	digestWriteU64(h, tmp, uint64(v))
}

func digestWriteF64(h hashWriter, tmp *[8]byte, v float64) {
	digestWriteU64(h, tmp, math.Float64bits(v))
}

func digestWriteString(h hashWriter, tmp *[8]byte, s string) {
	digestWriteU64(h, tmp, uint64(len(s)))
	h.Write([]byte(s))
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

type hashWriter interface {
	Write(p []byte) (n int, err error)
}
