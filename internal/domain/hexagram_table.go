package domain

// hexagramSeed is the handwritten part of the table: King Wen order, the
// conventional name, and the trigram pair. Everything else (binary key, home
// palace, generation, self/other lines) is derived when the package loads.
type hexagramSeed struct {
	name  string
	lower Trigram
	upper Trigram
}

var hexagramSeeds = [64]hexagramSeed{
	{"乾为天", TrigramQian, TrigramQian},
	{"坤为地", TrigramKun, TrigramKun},
	{"水雷屯", TrigramZhen, TrigramKan},
	{"山水蒙", TrigramKan, TrigramGen},
	{"水天需", TrigramQian, TrigramKan},
	{"天水讼", TrigramKan, TrigramQian},
	{"地水师", TrigramKan, TrigramKun},
	{"水地比", TrigramKun, TrigramKan},
	{"风天小畜", TrigramQian, TrigramXun},
	{"天泽履", TrigramDui, TrigramQian},
	{"地天泰", TrigramQian, TrigramKun},
	{"天地否", TrigramKun, TrigramQian},
	{"天火同人", TrigramLi, TrigramQian},
	{"火天大有", TrigramQian, TrigramLi},
	{"地山谦", TrigramGen, TrigramKun},
	{"雷地豫", TrigramKun, TrigramZhen},
	{"泽雷随", TrigramZhen, TrigramDui},
	{"山风蛊", TrigramXun, TrigramGen},
	{"地泽临", TrigramDui, TrigramKun},
	{"风地观", TrigramKun, TrigramXun},
	{"火雷噬嗑", TrigramZhen, TrigramLi},
	{"山火贲", TrigramLi, TrigramGen},
	{"山地剥", TrigramKun, TrigramGen},
	{"地雷复", TrigramZhen, TrigramKun},
	{"天雷无妄", TrigramZhen, TrigramQian},
	{"山天大畜", TrigramQian, TrigramGen},
	{"山雷颐", TrigramZhen, TrigramGen},
	{"泽风大过", TrigramXun, TrigramDui},
	{"坎为水", TrigramKan, TrigramKan},
	{"离为火", TrigramLi, TrigramLi},
	{"泽山咸", TrigramGen, TrigramDui},
	{"雷风恒", TrigramXun, TrigramZhen},
	{"天山遯", TrigramGen, TrigramQian},
	{"雷天大壮", TrigramQian, TrigramZhen},
	{"火地晋", TrigramKun, TrigramLi},
	{"地火明夷", TrigramLi, TrigramKun},
	{"风火家人", TrigramLi, TrigramXun},
	{"火泽睽", TrigramDui, TrigramLi},
	{"水山蹇", TrigramGen, TrigramKan},
	{"雷水解", TrigramKan, TrigramZhen},
	{"山泽损", TrigramDui, TrigramGen},
	{"风雷益", TrigramZhen, TrigramXun},
	{"泽天夬", TrigramQian, TrigramDui},
	{"天风姤", TrigramXun, TrigramQian},
	{"泽地萃", TrigramKun, TrigramDui},
	{"地风升", TrigramXun, TrigramKun},
	{"泽水困", TrigramKan, TrigramDui},
	{"水风井", TrigramXun, TrigramKan},
	{"泽火革", TrigramLi, TrigramDui},
	{"火风鼎", TrigramXun, TrigramLi},
	{"震为雷", TrigramZhen, TrigramZhen},
	{"艮为山", TrigramGen, TrigramGen},
	{"风山渐", TrigramGen, TrigramXun},
	{"雷泽归妹", TrigramDui, TrigramZhen},
	{"雷火丰", TrigramLi, TrigramZhen},
	{"火山旅", TrigramGen, TrigramLi},
	{"巽为风", TrigramXun, TrigramXun},
	{"兑为泽", TrigramDui, TrigramDui},
	{"风水涣", TrigramKan, TrigramXun},
	{"水泽节", TrigramDui, TrigramKan},
	{"风泽中孚", TrigramDui, TrigramXun},
	{"雷山小过", TrigramGen, TrigramZhen},
	{"水火既济", TrigramLi, TrigramKan},
	{"火水未济", TrigramKan, TrigramLi},
}

// palaceScanOrder is the conventional palace sequence used when attributing
// a hexagram to its home palace.
var palaceScanOrder = [8]Trigram{
	TrigramQian, TrigramKan, TrigramGen, TrigramZhen,
	TrigramXun, TrigramLi, TrigramKun, TrigramDui,
}

// generationFlips gives, per palace generation, the zero-based line indices
// that differ from the palace's pure hexagram. Generations 6 and 7 are the
// wandering-soul (游魂) and returning-soul (归魂) hexagrams.
var generationFlips = [8][]int{
	{},
	{0},
	{0, 1},
	{0, 1, 2},
	{0, 1, 2, 3},
	{0, 1, 2, 3, 4},
	{0, 1, 2, 4},
	{4},
}

// worldLineByGeneration maps a palace generation to the 世 line position.
var worldLineByGeneration = [8]int{6, 1, 2, 3, 4, 5, 4, 3}

var (
	hexagrams      [64]Hexagram
	hexagramsByKey map[string]Hexagram
)

func init() {
	// Palace membership first: each of the 8 palaces contributes 8 keys, one
	// per generation, partitioning the 64.
	type palaceSlot struct {
		palace     Trigram
		generation int
	}
	slots := make(map[string]palaceSlot, 64)
	for _, palace := range palaceScanOrder {
		pure := palace.Bits() + palace.Bits()
		for gen, flips := range generationFlips {
			key := []byte(pure)
			for _, i := range flips {
				if key[i] == '1' {
					key[i] = '0'
				} else {
					key[i] = '1'
				}
			}
			slots[string(key)] = palaceSlot{palace: palace, generation: gen}
		}
	}

	hexagramsByKey = make(map[string]Hexagram, 64)
	for i, seed := range hexagramSeeds {
		key := seed.lower.Bits() + seed.upper.Bits()
		slot, ok := slots[key]
		if !ok {
			panic("domain: hexagram " + seed.name + " missing from palace partition")
		}
		world := worldLineByGeneration[slot.generation]
		other := world + 3
		if world > 3 {
			other = world - 3
		}
		h := Hexagram{
			Key:           key,
			Number:        i + 1,
			Name:          seed.name,
			Upper:         seed.upper,
			Lower:         seed.lower,
			Palace:        slot.palace,
			PalaceElement: slot.palace.Element(),
			Generation:    slot.generation,
			SelfLine:      world,
			OtherLine:     other,
		}
		hexagrams[i] = h
		if _, dup := hexagramsByKey[key]; dup {
			panic("domain: duplicate hexagram key " + key)
		}
		hexagramsByKey[key] = h
	}
}
