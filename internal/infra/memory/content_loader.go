package memory

import (
	"context"

	"classquiz-service/internal/domain"
)

// ContentLoader fetches the question pools from a backing store.
type ContentLoader interface {
	LoadContent(ctx context.Context) (domain.ContentSet, error)
}

// StaticContentLoader serves a fixed in-memory content set (useful for
// tests/demos and for running without Postgres).
type StaticContentLoader struct {
	set domain.ContentSet
}

func NewStaticContentLoader(set domain.ContentSet) *StaticContentLoader {
	return &StaticContentLoader{set: set}
}

func (l *StaticContentLoader) LoadContent(_ context.Context) (domain.ContentSet, error) {
	return l.set, nil
}

// SampleContent is a small bilingual starter pack; swap the loader for the
// Postgres one to serve the full classroom datasets.
func SampleContent() domain.ContentSet {
	return domain.ContentSet{
		Idioms: map[string][]domain.IdiomEntry{
			"idiom-dash": {
				{Idiom: "Anak emas", Meaning: "Orang yang sangat disayangi", Example: "Ali ialah anak emas di syarikat itu kerana kerajinannya."},
				{Idiom: "Angkat kaki", Meaning: "Melarikan diri atau meninggalkan sesuatu tempat", Example: "Pencuri itu segera angkat kaki apabila polis tiba."},
				{Idiom: "Ayam tambatan", Meaning: "Orang harapan dalam sesuatu pasukan", Example: "Ronaldo ialah ayam tambatan pasukan itu."},
				{Idiom: "Naik angin", Meaning: "Menjadi marah", Example: "Cikgu naik angin apabila murid bising."},
				{Idiom: "Otak udang", Meaning: "Bodoh atau bebal", Example: "Jangan jadi otak udang, belajarlah bersungguh-sungguh."},
				{Idiom: "Panjang tangan", Meaning: "Suka mencuri", Example: "Pekerja panjang tangan itu telah diberhentikan."},
				{Idiom: "Ringan tulang", Meaning: "Rajin bekerja atau menolong", Example: "Jadilah orang yang ringan tulang membantu ibu bapa."},
				{Idiom: "Tulang belakang", Meaning: "Orang yang menjadi kekuatan kumpulan", Example: "Dia adalah tulang belakang pasukan bola sepak sekolah."},
			},
			"proverb-challenge": {
				{Idiom: "Melentur buluh biarlah dari rebungnya", Meaning: "Mendidik anak biarlah sejak mereka kecil lagi", Example: "Ibu bapa perlu mengajar nilai murni sejak kecil."},
				{Idiom: "Bagai kacang lupakan kulit", Meaning: "Orang yang tidak mengenang budi", Example: "Janganlah jadi seperti kacang lupakan kulit apabila berjaya."},
				{Idiom: "Sedikit-sedikit, lama-lama jadi bukit", Meaning: "Sabar dan tekun akhirnya berhasil juga", Example: "Ali menabung seringgit setiap hari."},
				{Idiom: "Sediakan payung sebelum hujan", Meaning: "Berwaspada sebelum ditimpa kesusahan", Example: "Kita perlu menabung untuk masa depan."},
				{Idiom: "Bagai isi dengan kuku", Meaning: "Hubungan persahabatan yang sangat erat", Example: "Ke mana sahaja mereka pasti bersama."},
				{Idiom: "Harapkan pagar, pagar makan padi", Meaning: "Orang yang dipercayai mengkhianati kita", Example: "Dia mencuri duit syarikat yang mempercayainya."},
			},
		},
		Science: []domain.ScienceFact{
			{Statement: "Mars is known as the Red Planet.", Truth: true, Explanation: "Iron oxide on its surface makes it look red."},
			{Statement: "The human heart has 3 chambers.", Truth: false, Explanation: "It has 4: two atria and two ventricles."},
			{Statement: "Plants need sunlight for photosynthesis.", Truth: true, Explanation: "Sunlight is their main energy source."},
			{Statement: "A whale is a kind of fish.", Truth: false, Explanation: "Whales are mammals and give birth to live young."},
			{Statement: "Water boils at 100 degrees Celsius.", Truth: true, Explanation: "That is the boiling point of pure water at sea level."},
			{Statement: "The Moon produces its own light.", Truth: false, Explanation: "It only reflects sunlight."},
			{Statement: "Spiders have 6 legs.", Truth: false, Explanation: "Spiders have 8 legs; insects have 6."},
			{Statement: "The Sun is a star.", Truth: true, Explanation: "It is the star closest to Earth."},
		},
		Countries: []domain.CountryEntry{
			{Name: "MALAYSIA", Continent: "Asia", Hint: "Home of the Petronas Towers"},
			{Name: "JAPAN", Continent: "Asia", Hint: "Land of the rising sun"},
			{Name: "EGYPT", Continent: "Africa", Hint: "Pyramids and the Nile"},
			{Name: "BRAZIL", Continent: "South America", Hint: "Largest rainforest on Earth"},
			{Name: "FRANCE", Continent: "Europe", Hint: "The Eiffel Tower"},
			{Name: "CANADA", Continent: "North America", Hint: "Maple leaf on the flag"},
			{Name: "AUSTRALIA", Continent: "Oceania", Hint: "Kangaroos live here"},
			{Name: "NEW ZEALAND", Continent: "Oceania", Hint: "Two main islands, lots of sheep"},
			{Name: "SOUTH AFRICA", Continent: "Africa", Hint: "Three capital cities"},
			{Name: "ICELAND", Continent: "Europe", Hint: "Volcanoes and geysers"},
		},
		Scramble: []domain.ScrambleEntry{
			{Word: "KUCING", Hint: "Haiwan peliharaan berbulu"},
			{Word: "PELANGI", Hint: "Tujuh warna"},
			{Word: "SUNGAI", Hint: "Air mengalir"},
			{Word: "POKOK", Hint: "Tumbuhan besar"},
			{Word: "BUNGA", Hint: "Cantik dan wangi"},
			{Word: "HUJAN", Hint: "Air dari langit"},
			{Word: "LAUT", Hint: "Air masin luas"},
		},
	}
}
