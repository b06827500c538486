package plantid

import "hash/fnv"

// Sets de demostración; la selección es determinista por imagen (hash del
// contenido) para que la misma foto dé siempre los mismos resultados.
var demoSets = [][]Result{
	{
		{NombreCientifico: "Rosa × hybrida", NombreComun: "Rosa", Familia: "Rosaceae", Score: "94.50",
			Imagen:    "https://images.unsplash.com/photo-1490750967868-88aa4486c946?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Rosa"},
		{NombreCientifico: "Rosa chinensis", NombreComun: "Rosa de China", Familia: "Rosaceae", Score: "89.30",
			Imagen:    "https://images.unsplash.com/photo-1518709268805-4e9042af9f23?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Rosa_chinensis"},
		{NombreCientifico: "Rosa damascena", NombreComun: "Rosa de Damasco", Familia: "Rosaceae", Score: "85.70",
			Imagen:    "https://images.unsplash.com/photo-1455659817273-f96807779a8a?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Rosa_damascena"},
	},
	{
		{NombreCientifico: "Euphorbia trigona", NombreComun: "Euphorbia Candelabro", Familia: "Euphorbiaceae", Score: "92.80",
			Imagen:    "https://images.unsplash.com/photo-1509937528035-ad76254b0356?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Euphorbia_trigona"},
		{NombreCientifico: "Echeveria elegans", NombreComun: "Rosa de Alabastro", Familia: "Crassulaceae", Score: "88.50",
			Imagen:    "https://images.unsplash.com/photo-1459156212016-c812468e2115?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Echeveria"},
		{NombreCientifico: "Haworthia fasciata", NombreComun: "Planta Cebra", Familia: "Asphodelaceae", Score: "85.20",
			Imagen:    "https://images.unsplash.com/photo-1519336305162-4b6ed6b6fc83?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Haworthia"},
	},
	{
		{NombreCientifico: "Monstera deliciosa", NombreComun: "Costilla de Adán", Familia: "Araceae", Score: "96.20",
			Imagen:    "https://images.unsplash.com/photo-1614594975525-e45190c55d0b?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Monstera_deliciosa"},
		{NombreCientifico: "Philodendron bipinnatifidum", NombreComun: "Filodendro", Familia: "Araceae", Score: "90.40",
			Imagen:    "https://images.unsplash.com/photo-1597690515683-3b57c6e90f3f?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Philodendron"},
		{NombreCientifico: "Epipremnum aureum", NombreComun: "Pothos Dorado", Familia: "Araceae", Score: "86.10",
			Imagen:    "https://images.unsplash.com/photo-1632207691143-643e2a9a9361?w=400",
			Wikipedia: "https://es.wikipedia.org/wiki/Epipremnum_aureum"},
	},
}

var demoExtras = []Result{
	{NombreCientifico: "Sansevieria trifasciata", NombreComun: "Lengua de Suegra", Familia: "Asparagaceae", Score: "75.40",
		Imagen:    "https://images.unsplash.com/photo-1593482892290-e8c5c8c4e674?w=400",
		Wikipedia: "https://es.wikipedia.org/wiki/Sansevieria_trifasciata"},
	{NombreCientifico: "Ficus elastica", NombreComun: "Árbol del Caucho", Familia: "Moraceae", Score: "68.20",
		Imagen:    "https://images.unsplash.com/photo-1598880940371-c756e015faf1?w=400",
		Wikipedia: "https://es.wikipedia.org/wiki/Ficus_elastica"},
}

func DemoResults(image []byte) *Response {
	h := fnv.New32a()
	_, _ = h.Write(image)
	set := demoSets[h.Sum32()%uint32(len(demoSets))]

	results := make([]Result, 0, len(set)+len(demoExtras))
	results = append(results, set...)
	results = append(results, demoExtras...)
	return &Response{Success: true, Results: results, Total: len(results), Demo: true}
}
