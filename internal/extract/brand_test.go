package extract

import "testing"

func TestBrandName(t *testing.T) {
	cases := map[string]string{
		`<title>Acme Outfitters | Shopify Store</title>`:     "Acme Outfitters",
		`<title>Acme Outfitters - Powered by Shopify</title>`: "Acme Outfitters",
		`<title>  Acme   Outfitters </title>`:                 "Acme Outfitters",
		`<title>Acme | Home</title>`:                          "Acme | Home",
		``:                                                    "",
	}
	for head, want := range cases {
		doc := mustDoc(t, "<html><head>"+head+"</head><body></body></html>")
		if got := BrandName(doc); got != want {
			t.Fatalf("%s: expected %q, got %q", head, want, got)
		}
	}
}
