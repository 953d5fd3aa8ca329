package model

import "skuqty/internal"

func ex(text string, ct internal.ContainerType, weight float64, pieces, packs int) internal.TrainingExample {
	return internal.TrainingExample{Text: text, ContainerType: ct, Weight: weight, PiecesPerPack: pieces, PacksPerCase: packs}
}

const (
	box  = internal.ContainerBox
	jar  = internal.ContainerJar
	tray = internal.ContainerTray
	bag  = internal.ContainerBag
	vase = internal.ContainerVase
)

// SeedCorpus returns the hand-labelled examples the model is bootstrapped
// from. A fresh slice is returned on every call.
func SeedCorpus() []internal.TrainingExample {
	return []internal.TrainingExample{
		ex("Diamond Light Candy 6gx24pcsx12boxes", box, 6, 24, 12),
		ex("POP MANIA MAXXI STRAWBERRY 10X48X28G", box, 28, 48, 10),
		ex("LUPPO DREAM BAR KAKAOLU 6KT12AD50G", box, 50, 12, 6),
		ex("BOOMBASTIC MARSH.BARKEK 6KT12AD40G UA/RU", box, 40, 12, 6),
		ex("WINERGY YER FISTIKLI BAR 6KT 24AD 30G", box, 30, 24, 6),
		ex("TWINGO KARAMEL 6KT 24AD 42 CIS2", box, 42, 24, 6),
		ex("BOOMB. H.CV.KAR.PPT. 6KT12ADT35G CIS2", box, 35, 12, 6),
		ex("CRAZY PRINC PATLAK AMB 6KT 24AD 30G KSA", box, 30, 24, 6),
		ex("BISCOLATA DUOMAX SUTLU 12KT 12AD 44G", box, 44, 12, 12),
		ex("BISCOLATA DUOMAX FINDIKLI 12KT 12AD 44G", box, 44, 12, 12),
		ex("Princess (Mini sandwich with strw cream) 900grx6", box, 900, 1, 6),
		ex("JELLYREX MIX 15g*12*24 JELLY CANDY", box, 15, 12, 24),
		ex("Kokolin draje şeker kaplamalı 12*24*12gr PUNTO", box, 12, 24, 12),
		ex("kokolin draje şek.kaplm.12*24*18gr choco punto", box, 18, 24, 12),
		ex("SLIM TRANSPARENT EGG 6GR*6*12 army tank", box, 6, 6, 12),
		ex("POP MANIA MAXXI RASPBERRY 10X48X28G", box, 28, 48, 10),
		ex("OZMO CORNET SUTLU 25G 24 ADT 4KT", box, 25, 24, 4),
		ex("POP MANIA MAXXI GREEN APPLE 10X48X28G", box, 28, 48, 10),
		ex("LOLLIPOP MAXXI WATERMELON 10X48X28G", box, 28, 48, 10),
		ex("LOLLIPOP MAXXI SOUR CHERRY 10X48X28G", box, 28, 48, 10),
		ex("500g Macaron Cookies (Mixed Flavors) 500Gx 8Boxes", box, 500, 1, 8),
		ex("Ice Cream Popsicle Marshmallow 11gx30pcsx24boxes", box, 11, 30, 24),
		ex("Ice Cream Lolly Marshmallow 12gx30pcsx24boxes", box, 12, 30, 24),
		ex("Cup Coffee Candy 15gx12pcsx12boxes", box, 15, 12, 12),
		ex("Skateboard Crazy Hair candy 20gx20pcsx12boxes", box, 20, 20, 12),
		ex("Queen Cup Jelly (Strawberry) 100g x 8 pcs x 12tray", tray, 100, 8, 12),
		ex("Pizza Jelly Grape 50gx30pcsx10boxes", box, 50, 30, 10),
		ex("Skeleton Jelly 32gx70pcsx6jars", jar, 32, 70, 6),
		ex("Animal shape + heart marshmallow stick 11gx30pcsx24boxes", box, 11, 30, 24),
		ex("Lighting Torch Candy 4.5gx20pcsx12boxes", box, 4.5, 20, 12),
		ex("LUPPO DREAM BAR KARAMEL 6KT12AD50G", box, 50, 12, 6),
		ex("OZMO CORNET MUZ-DRJ 25G 24ADT4KT TASO AZ", box, 25, 24, 4),
		ex("Ice Lolly Jelly 14gx30pcsx20boxes", box, 14, 30, 20),
		ex("OZMO HOPPO CIK. 24PK 90G", box, 90, 24, 1),
		ex("OZMO FUN YILBASI 12KT24AD23G RTS RU/UA", box, 23, 24, 12),
		ex("OZMO FUN HAYVAN SERISI  4KT 24AD 23G", box, 23, 24, 4),
		ex("OZMO OGOPOGO KAK KEK 4KT24AD30G CIS1", box, 30, 24, 4),
		ex("OZMO OGOPOGO CILEKLI KEK 4KT24AD30G", box, 30, 24, 4),
		ex("BISCOLATA STIX FINDIKLI 4KT 12AD 32G ()", box, 32, 12, 4),
		ex("BISCOLATA STIX P.PATLAKLI 4KT 12AD 34G", box, 34, 12, 4),
		ex("BISCOLATA STIX H.CEVIZ 4KT 12AD 32G()", box, 32, 12, 4),
		ex("BISCOLATA STIX SUTLU 4KT 12AD 40G CIS2", box, 40, 12, 4),
		ex("PAPITA PARTY DRJ.KAKAOLU BIS24AD 63G CIS", box, 63, 24, 1),
		ex("PAPITA PARTY DRJ. SADE BISK 24AD 63G CIS", box, 63, 24, 1),
		ex("BISCOLATA MOOD 24PK 115G", box, 115, 24, 1),
		ex("BISC.MOOD NIGHT 24PK125G(BITTER) UA/RU", box, 125, 24, 1),
		ex("OZMO HOPPO CILEK 4KT12AD40G (Y.DES)", box, 40, 12, 4),
		ex("OZMO HOPPO CIK. 4KT*12ADT*40G ", box, 40, 12, 4),
		ex("OZMO CORNET G-DRJ 4KT24AD25G YD TASO", box, 25, 24, 4),
		ex("OZMO BURGER 6KT 12ADT 40G IHRACAT CS2", box, 40, 12, 6),
		ex("BISCOLATA MOOD H.CEVZLI 24PK125G UA/RU", box, 125, 24, 1),
		ex("Luppo Red Velvet 12SP 182G", box, 182, 12, 1),
		ex("LUPPO KARAMEL SNDVICKEK 12SP 182G BALKAN", box, 182, 12, 1),
		ex("LUPPO CAKEBITE CHOCO 6KT24AD25G (UA)", box, 25, 24, 6),
		ex("SOLEN LUPPO CAKE BITE SADE 12SP 184G(CS)", box, 184, 12, 1),
		ex("LUPPO VISNE MAR.SNDVIC KEK 12SP 182G Y.T", box, 182, 12, 1),
		ex("LUPPO SANDVIC KAKKEK 6KT 24AD 25G LUBNAN", box, 25, 24, 6),
		ex("SOLEN LUPPO CAKE BITE DARK 12SP 184G(CS)", box, 184, 12, 1),
		ex("TRIPLEX KAPLAMALISZ 6KT 24AD 20G", box, 20, 24, 6),
		ex("BOOMB. P.PTKLI FNDKLI GF 6KT12AD32G CIS2", box, 32, 12, 6),
		ex("BISCOLATA MINIS FINDIKLI GOFRT 24PKT117G", box, 117, 24, 1),
		ex("OZMO CORNET CILEKLI 4KT24AD25G(AR-EN-RO)", box, 25, 24, 4),
		ex("Skeleton Pop candy 7gx30pcsx24boxes", box, 7, 30, 24),
		ex("harmonica Candy +fish Candy 3gx60pcsx12jars", jar, 3, 60, 12),
		ex("Marshmallow Hamburger Pop 18gx24pcsx12boxes", box, 18, 24, 12),
		ex("Super Car Gummy 20gx20pcsx12boxes", box, 20, 20, 12),
		ex("Birthday Cake Gummy 12gx20pcsx12boxes", box, 12, 20, 12),
		ex("Snake Gummy 8gx30pcsx20boxes", box, 8, 30, 20),
		ex("Long CC Stick Candy 4gx50pcsx40bags", bag, 4, 50, 40),
		ex("Biberon Liquid Candy 30mlX30pcsx18boxes", box, 30, 30, 18),
		ex("EYEBALL CANDY SATND 3,5 GX24X8", box, 3.5, 24, 8),
		ex("EYE CANDY STAND 3,5 GX24X8", box, 3.5, 24, 8),
		ex("Bear Pudding 40gx20pcsx18tray", tray, 40, 20, 18),
		ex("Cow Eyes Gummy 7gx60pcsx12jars", jar, 7, 60, 12),
		ex("Cola Tin Spray Candy 30mlx24pcsx12boxes", box, 30, 24, 12),
		ex("2in1 Crazy Hair Candy 20gx20pcsx12boxes", box, 20, 20, 12),
		ex("Crocodile jelly 35gx48pcsx6jars", jar, 35, 48, 6),
		ex("Snake jelly 35gx48pcsx6jars", jar, 35, 48, 6),
		ex("Toy and Jelly 30gx50pcsx6jars", jar, 30, 50, 6),
		ex("Dinosaur Gummy 8gx12pcsx20boxes", box, 8, 12, 20),
		ex("Birthday gummy 46gx6pcsx12box", box, 46, 6, 12),
		ex("5D Fruits Gummy Candy 10gx50pcsx12jars", jar, 10, 50, 12),
		ex("HOTDOG GUMMY 16g*24pcs*12boxes", box, 16, 24, 12),
		ex("COBRA GUMMY 16g*24pcs*12boxes", box, 16, 24, 12),
		ex("Baby bottle(Whistle candy) 9gx100pcsx6jars", jar, 9, 100, 6),
		ex("Winx Spray Candy 30gx12pcsx12boxes", box, 30, 12, 12),
		ex("Mini cup jlly (Benben bear Jar) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Mini Jelly cup in (Trush can) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Mini cup Jelly (Hippo Jar) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Mini cup Jelly (Owl Jar) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Mini cup Jelly (Duck Jar) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Jelly cup in Koala Jar 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Mini Cup Jelly (Panda Bag) 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Jelly cup in Monkey Jar 13gx100pcsx6jars", jar, 13, 100, 6),
		ex("Jelly (Skeleton shape) 35gx55pcsx6jars", jar, 35, 55, 6),
		ex("Mini Jackpot Gum Ball 20gx12pcsx 12boxes", box, 20, 12, 12),
		ex("Bear Jelly 35gx30pcsx12boxes", box, 35, 30, 12),
		ex("Butterfly Jelly 35gx30pcsx12boxes", box, 35, 30, 12),
		ex("5in1 Sour Powder 10gX50pcsx20boxes", box, 10, 50, 20),
		ex("Colour Candy Ball Stick 12gx40pcsx8vases", vase, 12, 40, 8),
		ex("WATERMELON GUMMY 8g*30pcs*20jars", jar, 8, 30, 20),
		ex("LADY BIRD GUMMY 8g*30pcs*20jars", jar, 8, 30, 20),
		ex("BILLARDS GUMMY 8g*30pcs*20jars", jar, 8, 30, 20),
		ex("DEVIL GUMMY 8g*30pcs*20jars", jar, 8, 30, 20),
		ex("stick eyeball gummy 10g*30pcs*20jars", jar, 10, 30, 20),
		ex("Stick grape gummy 10g*30pcs*20jars", jar, 10, 30, 20),
		ex("Biberon liquit candy 40g*30pcs*16boxes", box, 40, 30, 16),
		ex("Toilet Candy 13gx24pcsx12boxes", box, 13, 24, 12),
		ex("Lighting New Spray Candy 25gx30pcsx20boxes", box, 25, 30, 20),
		ex("Bracelet Candy 10gx48pcsx12boxes UNI", box, 10, 48, 12),
		ex("Mega sour jam 30gx20pcsx12boxes", box, 30, 20, 12),
		ex("Microphone pudding 33gx30pcsx12jars", jar, 33, 30, 12),
		ex("Skull Candy + bear Candy 6gx60pcsx12jars", jar, 6, 60, 12),
		ex("Stretch frog candy 5gx12pcsx6boxes", box, 5, 12, 6),
		ex("Twins eyeball Gummy 4g*100pcs*12jars", jar, 4, 100, 12),
		ex("Roll Gum 7g×24pcs×24boxes", box, 7, 24, 24),
		ex("Big Foot lollipop+Sour Powder Candy 7.5gx30pcsx24boxes", box, 7.5, 30, 24),
		ex("Mini Lollipop Shooter 3gx12pcsx 24boxes", box, 3, 12, 24),
		ex("Big Burger Gummy 32gx8pcsx8boxes", box, 32, 8, 8),
		ex("Super Sour Hard Candy 12gx24pcsx20boxes", box, 12, 24, 20),
		ex("Fruits Press Candy 10gx30pcsx20boxes", box, 10, 30, 20),
		ex("Rabbit Candy 6gx30pcsx24trays", tray, 6, 30, 24),
		ex("Mouse Candy 6gx30pcsx24trays", tray, 6, 30, 24),
		ex("Ice Cream 3in1 16gx24pcsx10boxes", box, 16, 24, 10),
		ex("3in1 Squeeze Candy 45gx12pcsx12boxes", box, 45, 12, 12),
		ex("CHOCODANS KARAMEL 4KT12AD125G RUSYA OTO", box, 125, 12, 4),
		ex(`Рулет "ALPELLA" з какао 290,25г*12шт №573`, box, 290.25, 12, 1),
		ex("Шоколадні цукерки (монетки) USD Chocolate Coin 2,5 г 200 шт Х 12", box, 2.5, 200, 12),
		ex(`Печиво "HALLEY" 300 гр Х 12 шт`, box, 300, 12, 1),
		ex(`Яйце шоколадне "ANIMAL WORLD" 25 гр 24Х6бл`, box, 25, 24, 6),
		ex("Бісквіт з начинкою 19гр.Х 24 Х 6", box, 19, 24, 6),
		ex("BLOX жувальна гумка 12,5 гр 20 Х 30 бл", box, 12.5, 20, 30),
		ex("Цукерки желейні 36гр 12шт Х12бл", box, 36, 12, 12),
		ex("Желейки фруктові 20гр 6блХ 24шт", box, 20, 24, 6),
		ex("Жувальна гумка 15 гр 20штХ 4бл", box, 15, 20, 4),
		ex("Драже 40 грамХ12штХ2бл Kenton", box, 40, 12, 2),
		ex("Льодяники 22 г * 24 шт* 6 бл", box, 22, 24, 6),
		ex("Мармелад жувальний 30 гр. 80штХ6 банки", jar, 30, 80, 6),
		ex("Желе в стаканчиках 100шт 500гр Х12", box, 500, 100, 12),
		ex("Цукерки асорті 8 г 60 шт Х 6 лотки", tray, 8, 60, 6),
		ex("Маршмелоу 150г*15шт/Хамле №7105", box, 150, 15, 1),
		ex("Вафлі шоколадні 142 г Х 24 бл", box, 142, 1, 24),
		ex("Печиво здобне 1,35 кг * 9 бл", box, 1350, 1, 9),
		ex("Карамель льодяникова 1кг Х8 пакет", bag, 1000, 1, 8),
		ex("Льодяники на паличці 12 г 40 шт Х 8 вази", vase, 12, 40, 8),
	}
}
