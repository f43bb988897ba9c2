package verse

import "time"

var staticVerses = []Verse{
	{Reference: "John 3:16", Text: "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life."},
	{Reference: "Psalm 23:1", Text: "The LORD is my shepherd; I shall not want."},
	{Reference: "Philippians 4:13", Text: "I can do all things through Christ which strengtheneth me."},
	{Reference: "Proverbs 3:5", Text: "Trust in the LORD with all thine heart; and lean not unto thine own understanding."},
	{Reference: "Isaiah 40:31", Text: "But they that wait upon the LORD shall renew their strength; they shall mount up with wings as eagles."},
	{Reference: "Romans 8:28", Text: "And we know that all things work together for good to them that love God, to them who are the called according to his purpose."},
	{Reference: "Matthew 11:28", Text: "Come unto me, all ye that labour and are heavy laden, and I will give you rest."},
	{Reference: "Joshua 1:9", Text: "Be strong and of a good courage; be not afraid, neither be thou dismayed: for the LORD thy God is with thee whithersoever thou goest."},
	{Reference: "Psalm 46:1", Text: "God is our refuge and strength, a very present help in trouble."},
	{Reference: "Jeremiah 29:11", Text: "For I know the thoughts that I think toward you, saith the LORD, thoughts of peace, and not of evil, to give you an expected end."},
	{Reference: "1 Corinthians 13:4", Text: "Charity suffereth long, and is kind; charity envieth not; charity vaunteth not itself, is not puffed up."},
	{Reference: "Lamentations 3:22-23", Text: "It is of the LORD's mercies that we are not consumed, because his compassions fail not. They are new every morning: great is thy faithfulness."},
	{Reference: "Psalm 119:105", Text: "Thy word is a lamp unto my feet, and a light unto my path."},
	{Reference: "Galatians 5:22-23", Text: "But the fruit of the Spirit is love, joy, peace, longsuffering, gentleness, goodness, faith, meekness, temperance."},
}

// StaticFor picks a verse deterministically by day of year.
func StaticFor(day time.Time) Verse {
	v := staticVerses[(day.YearDay()-1)%len(staticVerses)]
	v.Date = day.Format("2006-01-02")
	v.Source = SourceStatic
	return v
}
